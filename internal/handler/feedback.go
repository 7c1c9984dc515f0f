package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tourops/internal/domain"
	"tourops/internal/repository"
	"tourops/internal/service"
)

// FeedbackHandler handles HTTP requests for client feedback.
type FeedbackHandler struct {
	feedbackService *service.FeedbackService
	feedbackRepo    repository.FeedbackRepository
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedbackService *service.FeedbackService, feedbackRepo repository.FeedbackRepository) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		feedbackRepo:    feedbackRepo,
	}
}

// SubmitFeedbackRequest is the HTTP request body for rating a reservation.
type SubmitFeedbackRequest struct {
	ReservationID string `json:"reservation_id" binding:"required"`
	Rating        int    `json:"rating" binding:"required"`
	Comment       string `json:"comment"`
}

// FeedbackResponse is the wire form of a feedback entry.
type FeedbackResponse struct {
	ID            string `json:"id"`
	ReservationID string `json:"reservation_id"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment,omitempty"`
	CreatedAt     string `json:"created_at"`
}

// Submit handles POST /v1/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	feedback, err := h.feedbackService.Submit(c.Request.Context(), req.ReservationID, req.Rating, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, toFeedbackResponse(feedback))
}

// List handles GET /v1/feedback
func (h *FeedbackHandler) List(c *gin.Context) {
	entries, err := h.feedbackRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]FeedbackResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, toFeedbackResponse(entry))
	}
	respondJSON(c, http.StatusOK, responses)
}

// GetByReservation handles GET /v1/reservations/:id/feedback
func (h *FeedbackHandler) GetByReservation(c *gin.Context) {
	feedback, err := h.feedbackRepo.GetByReservationID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toFeedbackResponse(feedback))
}

func toFeedbackResponse(f *domain.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:            f.ID,
		ReservationID: f.ReservationID,
		Rating:        f.Rating,
		Comment:       f.Comment,
		CreatedAt:     f.CreatedAt.Format(time.RFC3339),
	}
}
