package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"judgebrief/internal/domain"
	"judgebrief/internal/handler"
	"judgebrief/internal/router"
	"judgebrief/internal/service"
	"judgebrief/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAnalysisHandler() (*handler.AnalysisHandler, *mocks.MockAnalysisService) {
	svc := new(mocks.MockAnalysisService)
	return handler.NewAnalysisHandler(svc), svc
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAnalysisHandler_Analyze_Success(t *testing.T) {
	h, svc := newAnalysisHandler()
	a := &domain.Analysis{ID: uuid.New(), SourceName: "ca-45", Status: domain.AnalysisStatusCompleted}
	svc.On("Analyze", mock.Anything, &service.AnalyzeInput{Name: "ca-45", Text: "IN THE SUPREME COURT OF INDIA"}).
		Return(a, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/analyses",
		strings.NewReader(`{"name":"ca-45","text":"IN THE SUPREME COURT OF INDIA"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Analyze(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	svc.AssertExpectations(t)
}

func TestAnalysisHandler_Analyze_MissingText(t *testing.T) {
	h, svc := newAnalysisHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/analyses", strings.NewReader(`{"name":"x"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Analyze(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeResponse(t, w).Error.Code)
	svc.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestAnalysisHandler_Upload_Accepted(t *testing.T) {
	h, svc := newAnalysisHandler()
	a := &domain.Analysis{ID: uuid.New(), Status: domain.AnalysisStatusQueued}
	svc.On("Upload", mock.Anything, mock.AnythingOfType("service.UploadInput")).Return(a, nil)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", "judgment.pdf")
	_, _ = part.Write([]byte("%PDF-1.4 judgment"))
	_ = writer.Close()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/analyses/upload", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())

	h.Upload(c)

	assert.Equal(t, http.StatusAccepted, w.Code)
	svc.AssertExpectations(t)
}

func TestAnalysisHandler_Upload_NoFile(t *testing.T) {
	h, _ := newAnalysisHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/analyses/upload", http.NoBody)

	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_FILE", decodeResponse(t, w).Error.Code)
}

func TestAnalysisHandler_List_Pagination(t *testing.T) {
	h, svc := newAnalysisHandler()
	svc.On("List", mock.Anything, 0, 20).Return([]domain.Analysis{{ID: uuid.New()}}, 1, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/analyses?offset=-5&limit=500", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Total)
	assert.Equal(t, 20, resp.Meta.Limit)
	svc.AssertExpectations(t)
}

func TestAnalysisHandler_GetByID(t *testing.T) {
	tests := []struct {
		name       string
		param      string
		setup      func(svc *mocks.MockAnalysisService, id uuid.UUID)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid_id",
			param:      "not-a-uuid",
			setup:      func(*mocks.MockAnalysisService, uuid.UUID) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_ID",
		},
		{
			name:  "not_found",
			param: "",
			setup: func(svc *mocks.MockAnalysisService, id uuid.UUID) {
				svc.On("GetByID", mock.Anything, id).Return(nil, domain.ErrAnalysisNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "ANALYSIS_NOT_FOUND",
		},
		{
			name:  "found",
			param: "",
			setup: func(svc *mocks.MockAnalysisService, id uuid.UUID) {
				svc.On("GetByID", mock.Anything, id).Return(&domain.Analysis{ID: id}, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc := newAnalysisHandler()
			id := uuid.New()
			tt.setup(svc, id)
			param := tt.param
			if param == "" {
				param = id.String()
			}

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/analyses/"+param, http.NoBody)
			c.Params = gin.Params{{Key: "id", Value: param}}

			h.GetByID(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeResponse(t, w).Error.Code)
			}
		})
	}
}

func TestAnalysisHandler_Brief_HTML(t *testing.T) {
	h, svc := newAnalysisHandler()
	id := uuid.New()
	svc.On("RenderBrief", mock.Anything, id).Return("<!doctype html><h1>Case Brief</h1>", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/analyses/"+id.String()+"/brief", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Brief(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "Case Brief")
}

func TestAnalysisHandler_Brief_NotReady(t *testing.T) {
	h, svc := newAnalysisHandler()
	id := uuid.New()
	svc.On("RenderBrief", mock.Anything, id).Return("", domain.ErrAnalysisNotReady)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Brief(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAnalysisHandler_Search_EmptyQuery(t *testing.T) {
	h, svc := newAnalysisHandler()
	id := uuid.New()
	svc.On("Search", mock.Anything, id, "").Return(nil, domain.ErrEmptyQuery)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/analyses/"+id.String()+"/search", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Search(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "EMPTY_QUERY", decodeResponse(t, w).Error.Code)
}

func TestAnalysisHandler_Delete(t *testing.T) {
	h, svc := newAnalysisHandler()
	id := uuid.New()
	svc.On("Delete", mock.Anything, id).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestAnalysisHandler_ExportCSV(t *testing.T) {
	h, svc := newAnalysisHandler()
	svc.On("Export", mock.Anything, mock.Anything, service.FormatCSV).
		Run(func(args mock.Arguments) {
			_, _ = io.WriteString(args.Get(1).(io.Writer), "Analysis ID,Source\n")
		}).
		Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/analyses/export.csv?name=Delhi+HC", http.NoBody)

	h.ExportCSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Delhi_HC_")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.Contains(t, w.Body.String(), "Analysis ID")
}

func TestAnalysisHandler_ExportXLSX_FailureBeforeWrite(t *testing.T) {
	h, svc := newAnalysisHandler()
	svc.On("Export", mock.Anything, mock.Anything, service.FormatXLSX).Return(errors.New("db down"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/analyses/export.xlsx", http.NoBody)

	h.ExportXLSX(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
	assert.False(t, decodeResponse(t, w).Success)
}

func TestRouter_ExportRouteTakesPrecedenceOverID(t *testing.T) {
	svc := new(mocks.MockAnalysisService)
	svc.On("Export", mock.Anything, mock.Anything, service.FormatCSV).Return(nil)
	r := router.Setup(nil,
		handler.NewAnalysisHandler(svc),
		handler.NewSearchHandler(),
		handler.NewHealthHandler(nil),
	)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/analyses/export.csv", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	svc.AssertExpectations(t)
	svc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrAnalysisNotFound, http.StatusNotFound, "ANALYSIS_NOT_FOUND"},
		{domain.ErrAnalysisNotReady, http.StatusConflict, "ANALYSIS_NOT_READY"},
		{domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{domain.ErrUploadFailed, http.StatusInternalServerError, "UPLOAD_FAILED"},
		{domain.ErrTextExtraction, http.StatusUnprocessableEntity, "TEXT_EXTRACTION_FAILED"},
		{domain.ErrEmptyQuery, http.StatusBadRequest, "EMPTY_QUERY"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}
