package handler

import (
	"net/http"
	"strconv"

	"leadflow_backend/internal/leads/messages"
	"leadflow_backend/internal/leads/repository"
	"leadflow_backend/internal/leads/scoring"
	"leadflow_backend/internal/leads/service"
	"leadflow_backend/internal/leads/transport"
	"leadflow_backend/platform/httpkit"
	"leadflow_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc      *service.Service
	scorer   *scoring.Service
	messages *messages.Service
	val      *validator.Validator
}

func New(svc *service.Service, scorer *scoring.Service, msgs *messages.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, scorer: scorer, messages: msgs, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.GetByID)
	rg.POST("/:id/score", h.Score)
	rg.GET("/:id/score/history", h.ScoreHistory)
	rg.GET("/:id/enrichment", h.EnrichmentSummary)
	rg.POST("/:id/message", h.GenerateMessage)
}

func (h *Handler) Create(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.Create(c.Request.Context(), identity.TenantID(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, toLeadResponse(lead))
}

func (h *Handler) List(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	leads, err := h.svc.List(c.Request.Context(), identity.TenantID(), limit, offset)
	if httpkit.HandleError(c, err) {
		return
	}

	items := make([]transport.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		items = append(items, toLeadResponse(lead))
	}
	httpkit.OK(c, items)
}

func (h *Handler) GetByID(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	lead, err := h.svc.GetByID(c.Request.Context(), identity.TenantID(), leadID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toLeadResponse(lead))
}

// Score runs the scoring engine for a lead. The optional request body carries
// enrichment data that takes precedence over the lead's stored attributes.
func (h *Handler) Score(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	// An empty body is a valid request: score from stored data only.
	var req transport.ScoreLeadRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
			return
		}
	}

	result, err := h.scorer.Score(c.Request.Context(), identity.TenantID(), leadID, req.EnrichmentData)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ScoreResponse{
		Score:        result.Score,
		Factors:      result.Factors.Map(),
		ModelVersion: result.ModelVersion,
		ScoredAt:     result.ScoredAt,
	})
}

func (h *Handler) ScoreHistory(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	records, err := h.svc.ScoreHistory(c.Request.Context(), identity.TenantID(), leadID, limit)
	if httpkit.HandleError(c, err) {
		return
	}

	items := make([]transport.ScoreHistoryEntry, 0, len(records))
	for _, record := range records {
		items = append(items, transport.ScoreHistoryEntry{
			Score:        record.Score,
			Factors:      record.Factors.Map(),
			ModelVersion: record.ModelVersion,
			Timestamp:    record.CreatedAt,
		})
	}
	httpkit.OK(c, items)
}

func (h *Handler) EnrichmentSummary(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	summary, err := h.svc.EnrichmentSummary(c.Request.Context(), identity.TenantID(), leadID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.EnrichmentSummaryResponse{
		Source:    summary.Source,
		Score:     summary.Data.Score,
		Factors:   summary.Data.Factors.Map(),
		UpdatedAt: summary.UpdatedAt,
	})
}

func (h *Handler) GenerateMessage(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	message, err := h.messages.Generate(c.Request.Context(), identity.TenantID(), leadID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.MessageResponse{
		LeadID:  message.LeadID,
		Bucket:  message.Bucket,
		Subject: message.Subject,
		Body:    message.Body,
	})
}

func toLeadResponse(lead repository.Lead) transport.LeadResponse {
	return transport.LeadResponse{
		ID:        lead.ID,
		Name:      lead.Name,
		Source:    lead.Source,
		Data:      lead.Data,
		CreatedAt: lead.CreatedAt,
		UpdatedAt: lead.UpdatedAt,
	}
}
