package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tourops/internal/domain"
	"tourops/internal/repository"
)

// GuideHandler handles HTTP requests for tour guides.
type GuideHandler struct {
	guideRepo repository.GuideRepository
}

// NewGuideHandler creates a new GuideHandler.
func NewGuideHandler(guideRepo repository.GuideRepository) *GuideHandler {
	return &GuideHandler{guideRepo: guideRepo}
}

// GuideRequest is the HTTP request body for creating or updating a guide.
type GuideRequest struct {
	Name      string   `json:"name" binding:"required"`
	Phone     string   `json:"phone"`
	Email     string   `json:"email"`
	Languages []string `json:"languages"`
	Active    *bool    `json:"active"`
}

// GuideResponse is the wire form of a guide.
type GuideResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Phone     string   `json:"phone,omitempty"`
	Email     string   `json:"email,omitempty"`
	Languages []string `json:"languages,omitempty"`
	Active    bool     `json:"active"`
	CreatedAt string   `json:"created_at"`
}

// List handles GET /v1/guides
func (h *GuideHandler) List(c *gin.Context) {
	guides, err := h.guideRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]GuideResponse, 0, len(guides))
	for _, guide := range guides {
		responses = append(responses, toGuideResponse(guide))
	}
	respondJSON(c, http.StatusOK, responses)
}

// Get handles GET /v1/guides/:id
func (h *GuideHandler) Get(c *gin.Context) {
	guide, err := h.guideRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toGuideResponse(guide))
}

// Create handles POST /v1/guides
func (h *GuideHandler) Create(c *gin.Context) {
	var req GuideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	guide := &domain.Guide{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Languages: req.Languages,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if req.Active != nil {
		guide.Active = *req.Active
	}

	if err := h.guideRepo.Create(c.Request.Context(), guide); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, toGuideResponse(guide))
}

// Update handles PUT /v1/guides/:id
func (h *GuideHandler) Update(c *gin.Context) {
	var req GuideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	guide, err := h.guideRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	guide.Name = req.Name
	guide.Phone = req.Phone
	guide.Email = req.Email
	guide.Languages = req.Languages
	if req.Active != nil {
		guide.Active = *req.Active
	}

	if err := h.guideRepo.Update(c.Request.Context(), guide); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toGuideResponse(guide))
}

func toGuideResponse(g *domain.Guide) GuideResponse {
	return GuideResponse{
		ID:        g.ID,
		Name:      g.Name,
		Phone:     g.Phone,
		Email:     g.Email,
		Languages: g.Languages,
		Active:    g.Active,
		CreatedAt: g.CreatedAt.Format(time.RFC3339),
	}
}
