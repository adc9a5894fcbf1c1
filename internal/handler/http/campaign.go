package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/uzgnsodyum/shopping-site-2/pkg/httputil"
	"github.com/uzgnsodyum/shopping-site-2/pkg/validator"

	"github.com/uzgnsodyum/shopping-site-2/internal/service"
)

// CampaignHandler handles HTTP requests for campaign endpoints.
type CampaignHandler struct {
	service *service.CampaignService
	logger  *slog.Logger
}

// NewCampaignHandler creates a new campaign HTTP handler.
func NewCampaignHandler(svc *service.CampaignService, logger *slog.Logger) *CampaignHandler {
	return &CampaignHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateCampaignRequest is the JSON request body for creating a campaign.
type CreateCampaignRequest struct {
	Title       string    `json:"title" validate:"required,min=1,max=500"`
	Description string    `json:"description" validate:"required,max=5000"`
	ImageURL    string    `json:"image_url" validate:"required,url"`
	DiscountPct int       `json:"discount_pct" validate:"required,gte=1,lte=100"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
	ProductIDs  []string  `json:"product_ids" validate:"required,min=1,dive,required"`
}

// List handles GET /api/v1/campaigns
func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.service.ListCampaigns(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: campaigns})
}

// Get handles GET /api/v1/campaigns/{campaignId}
func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignId")

	campaign, err := h.service.GetCampaign(r.Context(), campaignID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: campaign})
}

// Create handles POST /api/v1/campaigns
func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	campaign, err := h.service.CreateCampaign(r.Context(), service.CreateCampaignInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		DiscountPct: req.DiscountPct,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		ProductIDs:  req.ProductIDs,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: campaign})
}
