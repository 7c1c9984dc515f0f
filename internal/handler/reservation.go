package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tourops/internal/domain"
	"tourops/internal/service"
)

// ReservationHandler handles HTTP requests for reservations.
type ReservationHandler struct {
	reservationService *service.ReservationService
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(reservationService *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// TouristGroupPayload is the wire form of a tourist group.
type TouristGroupPayload struct {
	RepresentativeName  string `json:"representative_name"`
	RepresentativePhone string `json:"representative_phone"`
	CompanionsCount     int    `json:"companions_count"`
}

// GroupMemberPayload is the wire form of an individual tourist.
type GroupMemberPayload struct {
	Name           string `json:"name"`
	DocumentNumber string `json:"document_number"`
	Age            int    `json:"age,omitempty"`
	Phone          string `json:"phone,omitempty"`
}

// CreateReservationRequest is the HTTP request body for creating a reservation.
type CreateReservationRequest struct {
	TourName            string                `json:"tour_name"`
	Date                string                `json:"date"` // YYYY-MM-DD
	Time                string                `json:"time"`
	ClientName          string                `json:"client_name"`
	ClientPhone         string                `json:"client_phone"`
	ClientEmail         string                `json:"client_email,omitempty"`
	PickupLocation      string                `json:"pickup_location"`
	SpecialRequirements string                `json:"special_requirements,omitempty"`
	Adults              int                   `json:"adults"`
	Children            int                   `json:"children"`
	Total               float64               `json:"total"`
	PricePerAdult       float64               `json:"price_per_adult,omitempty"`
	PricePerChild       float64               `json:"price_per_child,omitempty"`
	Groups              []TouristGroupPayload `json:"groups,omitempty"`
	Tourists            []GroupMemberPayload  `json:"tourists,omitempty"`
}

// ChangeStatusRequest is the HTTP request body for a lifecycle transition.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// UpdatePaymentRequest is the HTTP request body for a payment status update.
type UpdatePaymentRequest struct {
	PaymentStatus string `json:"payment_status"`
}

// ReservationResponse is the wire form of a reservation.
type ReservationResponse struct {
	ID                  string                `json:"id"`
	TourName            string                `json:"tour_name"`
	Date                string                `json:"date"`
	Time                string                `json:"time"`
	ClientName          string                `json:"client_name"`
	ClientPhone         string                `json:"client_phone"`
	ClientEmail         string                `json:"client_email,omitempty"`
	PickupLocation      string                `json:"pickup_location"`
	SpecialRequirements string                `json:"special_requirements,omitempty"`
	Adults              int                   `json:"adults"`
	Children            int                   `json:"children"`
	Total               float64               `json:"total"`
	PricePerAdult       float64               `json:"price_per_adult,omitempty"`
	PricePerChild       float64               `json:"price_per_child,omitempty"`
	Status              string                `json:"status"`
	PaymentStatus       string                `json:"payment_status"`
	IsRated             bool                  `json:"is_rated"`
	Groups              []TouristGroupPayload `json:"groups,omitempty"`
	Tourists            []GroupMemberPayload  `json:"tourists,omitempty"`
	CreatedAt           string                `json:"created_at"`
	UpdatedAt           string                `json:"updated_at"`
}

// StatsResponse is the wire form of the export statistics.
type StatsResponse struct {
	TotalReservations int     `json:"total_reservations"`
	TotalTourists     int     `json:"total_tourists"`
	TotalRevenue      float64 `json:"total_revenue"`
	AvgTicket         float64 `json:"avg_ticket"`
}

// ListReservationsResponse is the HTTP response for the reservation list view:
// one page of results plus the stats over the whole filtered set.
type ListReservationsResponse struct {
	Items      []ReservationResponse `json:"items"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
	StartIndex int                   `json:"start_index"`
	Stats      StatsResponse         `json:"stats"`
}

// List handles GET /v1/reservations
func (h *ReservationHandler) List(c *gin.Context) {
	criteria := service.FilterCriteria{
		SearchTerm:     c.Query("search"),
		StatusFilter:   c.Query("status"),
		DateFrom:       c.Query("date_from"),
		DateTo:         c.Query("date_to"),
		CustomerFilter: c.Query("customer"),
		MinPassengers:  c.Query("min_passengers"),
		MaxPassengers:  c.Query("max_passengers"),
	}

	pageIndex := intQuery(c, "page", 1)
	pageSize := intQuery(c, "page_size", service.DefaultPageSize)

	result, err := h.reservationService.List(c.Request.Context(), criteria, pageSize, pageIndex)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]ReservationResponse, 0, len(result.Page.Items))
	for _, reservation := range result.Page.Items {
		items = append(items, toReservationResponse(reservation))
	}

	respondJSON(c, http.StatusOK, ListReservationsResponse{
		Items:      items,
		Page:       result.Page.PageIndex,
		PageSize:   pageSize,
		TotalPages: result.Page.TotalPages,
		StartIndex: result.Page.StartIndex,
		Stats: StatsResponse{
			TotalReservations: result.Stats.TotalReservations,
			TotalTourists:     result.Stats.TotalTourists,
			TotalRevenue:      result.Stats.TotalRevenue,
			AvgTicket:         result.Stats.AvgTicket,
		},
	})
}

// Get handles GET /v1/reservations/:id
func (h *ReservationHandler) Get(c *gin.Context) {
	reservation, err := h.reservationService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toReservationResponse(reservation))
}

// Create handles POST /v1/reservations
func (h *ReservationHandler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respondError(c, service.ErrInvalidDate)
		return
	}

	reservation := &domain.Reservation{
		TourName:            req.TourName,
		Date:                date,
		Time:                req.Time,
		ClientName:          req.ClientName,
		ClientPhone:         req.ClientPhone,
		ClientEmail:         req.ClientEmail,
		PickupLocation:      req.PickupLocation,
		SpecialRequirements: req.SpecialRequirements,
		Adults:              req.Adults,
		Children:            req.Children,
		Total:               req.Total,
		PricePerAdult:       req.PricePerAdult,
		PricePerChild:       req.PricePerChild,
	}
	for _, group := range req.Groups {
		reservation.Groups = append(reservation.Groups, domain.TouristGroup{
			RepresentativeName:  group.RepresentativeName,
			RepresentativePhone: group.RepresentativePhone,
			CompanionsCount:     group.CompanionsCount,
		})
	}
	for _, tourist := range req.Tourists {
		reservation.Tourists = append(reservation.Tourists, domain.GroupMember{
			Name:           tourist.Name,
			DocumentNumber: tourist.DocumentNumber,
			Age:            tourist.Age,
			Phone:          tourist.Phone,
		})
	}

	if err := h.reservationService.Create(c.Request.Context(), reservation); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, toReservationResponse(reservation))
}

// ChangeStatus handles POST /v1/reservations/:id/status
func (h *ReservationHandler) ChangeStatus(c *gin.Context) {
	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	reservation, err := h.reservationService.ChangeStatus(c.Request.Context(), c.Param("id"), domain.ReservationStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toReservationResponse(reservation))
}

// UpdatePayment handles POST /v1/reservations/:id/payment
func (h *ReservationHandler) UpdatePayment(c *gin.Context) {
	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	reservation, err := h.reservationService.UpdatePayment(c.Request.Context(), c.Param("id"), domain.PaymentStatus(req.PaymentStatus))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toReservationResponse(reservation))
}

func toReservationResponse(r *domain.Reservation) ReservationResponse {
	response := ReservationResponse{
		ID:                  r.ID,
		TourName:            r.TourName,
		Date:                r.Date.Format("2006-01-02"),
		Time:                r.Time,
		ClientName:          r.ClientName,
		ClientPhone:         r.ClientPhone,
		ClientEmail:         r.ClientEmail,
		PickupLocation:      r.PickupLocation,
		SpecialRequirements: r.SpecialRequirements,
		Adults:              r.Adults,
		Children:            r.Children,
		Total:               r.Total,
		PricePerAdult:       r.PricePerAdult,
		PricePerChild:       r.PricePerChild,
		Status:              string(r.Status),
		PaymentStatus:       string(r.PaymentStatus),
		IsRated:             r.IsRated,
		CreatedAt:           r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           r.UpdatedAt.Format(time.RFC3339),
	}
	for _, group := range r.Groups {
		response.Groups = append(response.Groups, TouristGroupPayload{
			RepresentativeName:  group.RepresentativeName,
			RepresentativePhone: group.RepresentativePhone,
			CompanionsCount:     group.CompanionsCount,
		})
	}
	for _, tourist := range r.Tourists {
		response.Tourists = append(response.Tourists, GroupMemberPayload{
			Name:           tourist.Name,
			DocumentNumber: tourist.DocumentNumber,
			Age:            tourist.Age,
			Phone:          tourist.Phone,
		})
	}
	return response
}

func intQuery(c *gin.Context, key string, fallback int) int {
	value := c.Query(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
