package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"judgebrief/internal/export"
	"judgebrief/internal/service"
)

// AnalysisHandler handles judgment analysis endpoints.
type AnalysisHandler struct {
	analysisService service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

type analyzeRequest struct {
	Name string `json:"name"`
	Text string `json:"text" binding:"required"`
}

// Analyze handles POST /api/v1/analyses
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	a, err := h.analysisService.Analyze(c.Request.Context(), &service.AnalyzeInput{Name: req.Name, Text: req.Text})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, a)
}

// Upload handles POST /api/v1/analyses/upload
func (h *AnalysisHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	a, err := h.analysisService.Upload(c.Request.Context(), service.UploadInput{File: file, Header: header})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondAccepted(c, a)
}

// List handles GET /api/v1/analyses
func (h *AnalysisHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	analyses, total, err := h.analysisService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, analyses, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/analyses/:id
func (h *AnalysisHandler) GetByID(c *gin.Context) {
	id, ok := parseAnalysisID(c)
	if !ok {
		return
	}

	a, err := h.analysisService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, a)
}

// Brief handles GET /api/v1/analyses/:id/brief and returns the rendered HTML page.
func (h *AnalysisHandler) Brief(c *gin.Context) {
	id, ok := parseAnalysisID(c)
	if !ok {
		return
	}

	page, err := h.analysisService.RenderBrief(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// Search handles GET /api/v1/analyses/:id/search?q=
func (h *AnalysisHandler) Search(c *gin.Context) {
	id, ok := parseAnalysisID(c)
	if !ok {
		return
	}

	result, err := h.analysisService.Search(c.Request.Context(), id, c.Query("q"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Delete handles DELETE /api/v1/analyses/:id
func (h *AnalysisHandler) Delete(c *gin.Context) {
	id, ok := parseAnalysisID(c)
	if !ok {
		return
	}

	if err := h.analysisService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "analysis deleted"})
}

// ExportCSV handles GET /api/v1/analyses/export.csv
func (h *AnalysisHandler) ExportCSV(c *gin.Context) {
	h.export(c, service.FormatCSV, "text/csv; charset=utf-8")
}

// ExportXLSX handles GET /api/v1/analyses/export.xlsx
func (h *AnalysisHandler) ExportXLSX(c *gin.Context) {
	h.export(c, service.FormatXLSX, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

func (h *AnalysisHandler) export(c *gin.Context, format, contentType string) {
	filename := export.BuildFilename(c.Query("name"), format, time.Now())
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.analysisService.Export(c.Request.Context(), c.Writer, format); err != nil {
		if c.Writer.Written() {
			requestID, _ := c.Get("request_id")
			log.Printf("[%s] analysisHandler.export: %s export interrupted: %v", requestID, format, err)
			return
		}
		c.Header("Content-Type", "")
		c.Header("Content-Disposition", "")
		HandleError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func parseAnalysisID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid analysis ID")
		return uuid.Nil, false
	}
	return id, true
}
