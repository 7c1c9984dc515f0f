package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tourops/internal/domain"
	"tourops/internal/repository"
)

// AgencyHandler handles HTTP requests for partner agencies.
type AgencyHandler struct {
	agencyRepo repository.AgencyRepository
}

// NewAgencyHandler creates a new AgencyHandler.
func NewAgencyHandler(agencyRepo repository.AgencyRepository) *AgencyHandler {
	return &AgencyHandler{agencyRepo: agencyRepo}
}

// AgencyRequest is the HTTP request body for creating or updating an agency.
type AgencyRequest struct {
	Name        string  `json:"name" binding:"required"`
	ContactName string  `json:"contact_name"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email"`
	Commission  float64 `json:"commission"`
}

// AgencyResponse is the wire form of an agency.
type AgencyResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	ContactName string  `json:"contact_name,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Email       string  `json:"email,omitempty"`
	Commission  float64 `json:"commission"`
	CreatedAt   string  `json:"created_at"`
}

// List handles GET /v1/agencies
func (h *AgencyHandler) List(c *gin.Context) {
	agencies, err := h.agencyRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]AgencyResponse, 0, len(agencies))
	for _, agency := range agencies {
		responses = append(responses, toAgencyResponse(agency))
	}
	respondJSON(c, http.StatusOK, responses)
}

// Get handles GET /v1/agencies/:id
func (h *AgencyHandler) Get(c *gin.Context) {
	agency, err := h.agencyRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toAgencyResponse(agency))
}

// Create handles POST /v1/agencies
func (h *AgencyHandler) Create(c *gin.Context) {
	var req AgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.Commission < 0 || req.Commission > 100 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "commission must be between 0 and 100"})
		return
	}

	agency := &domain.Agency{
		ID:          uuid.New().String(),
		Name:        req.Name,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		Commission:  req.Commission,
		CreatedAt:   time.Now(),
	}

	if err := h.agencyRepo.Create(c.Request.Context(), agency); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, toAgencyResponse(agency))
}

// Update handles PUT /v1/agencies/:id
func (h *AgencyHandler) Update(c *gin.Context) {
	var req AgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.Commission < 0 || req.Commission > 100 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "commission must be between 0 and 100"})
		return
	}

	agency, err := h.agencyRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	agency.Name = req.Name
	agency.ContactName = req.ContactName
	agency.Phone = req.Phone
	agency.Email = req.Email
	agency.Commission = req.Commission

	if err := h.agencyRepo.Update(c.Request.Context(), agency); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toAgencyResponse(agency))
}

func toAgencyResponse(a *domain.Agency) AgencyResponse {
	return AgencyResponse{
		ID:          a.ID,
		Name:        a.Name,
		ContactName: a.ContactName,
		Phone:       a.Phone,
		Email:       a.Email,
		Commission:  a.Commission,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
	}
}
