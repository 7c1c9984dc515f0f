package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tourops/internal/domain"
	"tourops/internal/email"
	"tourops/internal/service"
	"tourops/internal/storage"
	"tourops/internal/voucher"
)

// VoucherHandler serves payment voucher documents: on-the-fly PDF download or
// preview, and delivery by e-mail with an archived copy.
type VoucherHandler struct {
	reservationService *service.ReservationService
	company            voucher.CompanyInfo
	mailer             *email.Client
	archive            *storage.VoucherArchive
	notifier           *service.NotificationService
}

// NewVoucherHandler creates a new VoucherHandler. Mailer and archive may be
// nil when SMTP or S3 are not configured; Send then reports the missing piece.
func NewVoucherHandler(
	reservationService *service.ReservationService,
	company voucher.CompanyInfo,
	mailer *email.Client,
	archive *storage.VoucherArchive,
	notifier *service.NotificationService,
) *VoucherHandler {
	return &VoucherHandler{
		reservationService: reservationService,
		company:            company,
		mailer:             mailer,
		archive:            archive,
		notifier:           notifier,
	}
}

// SendVoucherResponse is the HTTP response after a voucher was e-mailed.
type SendVoucherResponse struct {
	Sent       bool   `json:"sent"`
	Recipient  string `json:"recipient"`
	ArchiveURL string `json:"archive_url,omitempty"`
}

// Download handles GET /v1/reservations/:id/voucher
// With ?disposition=inline the document opens in the browser instead of
// downloading.
func (h *VoucherHandler) Download(c *gin.Context) {
	reservation, err := h.reservationService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	data, err := h.generate(reservation)
	if err != nil {
		respondError(c, err)
		return
	}

	disposition := "attachment"
	if c.Query("disposition") == "inline" {
		disposition = "inline"
	}
	filename := fmt.Sprintf("voucher-%s.pdf", reservation.ID)

	c.Header("Content-Disposition", fmt.Sprintf(`%s; filename="%s"`, disposition, filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// Send handles POST /v1/reservations/:id/voucher/send
func (h *VoucherHandler) Send(c *gin.Context) {
	reservation, err := h.reservationService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if reservation.ClientEmail == "" {
		respondError(c, service.ErrMissingClientEmail)
		return
	}
	if h.mailer == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "mail delivery is not configured"})
		return
	}

	data, err := h.generate(reservation)
	if err != nil {
		respondError(c, err)
		return
	}

	var archiveURL string
	if h.archive != nil {
		url, err := h.archive.Store(c.Request.Context(), reservation.ID, data)
		if err != nil {
			// Archiving is best effort; delivery still proceeds.
			archiveURL = ""
		} else {
			archiveURL = url
		}
	}

	if err := h.mailer.SendVoucher(reservation, data); err != nil {
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "voucher delivery failed"})
		return
	}

	if h.notifier != nil {
		_ = h.notifier.NotifyVoucherSent(c.Request.Context(), reservation)
	}

	respondJSON(c, http.StatusOK, SendVoucherResponse{
		Sent:       true,
		Recipient:  reservation.ClientEmail,
		ArchiveURL: archiveURL,
	})
}

// generate builds the voucher PDF for a reservation. Builder and renderer are
// single-use, so each request gets a fresh pair.
func (h *VoucherHandler) generate(reservation *domain.Reservation) ([]byte, error) {
	builder := voucher.NewBuilder(voucher.NewPDFRenderer(), h.company)
	if err := builder.Build(reservation); err != nil {
		return nil, err
	}
	return builder.Export()
}
