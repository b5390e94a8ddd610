package apihandlers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"sift/internal/app"
	"sift/internal/services"
)

type APIHandler struct {
	App *app.App
}

func NewAPIHandler(appInstance *app.App) *APIHandler {
	return &APIHandler{App: appInstance}
}

// ClassifyRequest is the body for POST /api/classify.
type ClassifyRequest struct {
	Texts      []string `json:"texts" binding:"required,min=1"`
	Categories []string `json:"categories" binding:"required,min=1"`
}

type classificationResultItem struct {
	Text            string  `json:"text"`
	Category        string  `json:"category"`
	SimilarityScore float64 `json:"similarity_score"`
}

// FilterRequest is the body for POST /api/filter.
type FilterRequest struct {
	Texts   []string `json:"texts" binding:"required,min=1"`
	Filters []string `json:"filters" binding:"required,min=1"`
}

type filterMatchItem struct {
	FilterName string  `json:"filter_name"`
	Score      float64 `json:"score"`
	Matched    bool    `json:"matched"`
}

type filterResultItem struct {
	Text      string            `json:"text"`
	Matches   []filterMatchItem `json:"matches"`
	IsFlagged bool              `json:"is_flagged"`
}

// HealthHandler handles GET /.
func (h *APIHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": h.App.Config.Server.Name})
}

// ClassifyHandler builds a fresh classifier per request, registers the
// requested categories and classifies the whole batch. Business failures
// surface as a single 500 with the failure message; no partial results.
func (h *APIHandler) ClassifyHandler(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Unprocessable(c, "invalid request body: "+err.Error())
		return
	}

	classifier := services.NewClassifierService(h.App.Embedder)
	if err := classifier.AddCategories(c.Request.Context(), req.Categories); err != nil {
		log.Errorf("classify: failed to register categories: %v", err)
		Internal(c, err.Error())
		return
	}

	results, err := classifier.ClassifyBatch(c.Request.Context(), req.Texts)
	if err != nil {
		log.Errorf("classify: batch classification failed: %v", err)
		Internal(c, err.Error())
		return
	}

	items := make([]classificationResultItem, 0, len(results))
	for _, r := range results {
		items = append(items, classificationResultItem{
			Text:            r.Text,
			Category:        r.Category,
			SimilarityScore: round4(r.SimilarityScore),
		})
	}
	c.JSON(http.StatusOK, gin.H{"results": items})
}

// FilterHandler evaluates every requested filter against every text.
func (h *APIHandler) FilterHandler(c *gin.Context) {
	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Unprocessable(c, "invalid request body: "+err.Error())
		return
	}

	filterService := services.NewFilterService(h.App.Embedder)
	results, err := filterService.FilterTexts(c.Request.Context(), req.Texts, req.Filters)
	if err != nil {
		log.Errorf("filter: failed to filter texts: %v", err)
		Internal(c, err.Error())
		return
	}

	items := make([]filterResultItem, 0, len(results))
	for _, r := range results {
		matches := make([]filterMatchItem, 0, len(r.Matches))
		for _, m := range r.Matches {
			matches = append(matches, filterMatchItem{
				FilterName: m.FilterName,
				Score:      round4(m.Score),
				Matched:    m.Matched,
			})
		}
		items = append(items, filterResultItem{
			Text:      r.Text,
			Matches:   matches,
			IsFlagged: r.IsFlagged,
		})
	}
	c.JSON(http.StatusOK, gin.H{"results": items})
}

// round4 rounds scores for the response payload only; services keep full
// precision internally.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
