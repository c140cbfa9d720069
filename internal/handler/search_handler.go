package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"judgebrief/internal/domain"
	"judgebrief/internal/search"
)

// SearchHandler runs keyword search over caller-supplied text.
type SearchHandler struct{}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler() *SearchHandler {
	return &SearchHandler{}
}

type searchRequest struct {
	Text  string `json:"text"`
	Query string `json:"query"`
}

type searchResponse struct {
	Query       string         `json:"query"`
	Total       int            `json:"total"`
	Matches     []search.Match `json:"matches"`
	Highlighted string         `json:"highlighted"`
}

// Search handles POST /api/v1/search
func (h *SearchHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		HandleError(c, domain.ErrEmptyQuery)
		return
	}

	RespondOK(c, searchResponse{
		Query:       req.Query,
		Total:       search.Count(req.Text, req.Query),
		Matches:     search.Find(req.Text, req.Query),
		Highlighted: search.Highlight(req.Text, req.Query),
	})
}
