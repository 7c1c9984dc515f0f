package email

import (
	"bytes"
	"fmt"

	"github.com/wneessen/go-mail"

	"tourops/internal/domain"
)

// Client sends transactional e-mail for the back office.
type Client struct {
	host      string
	port      int
	user      string
	password  string
	fromName  string
	fromEmail string
}

// NewClient creates a new SMTP client.
func NewClient(host string, port int, user, password, fromName, fromEmail string) *Client {
	return &Client{
		host:      host,
		port:      port,
		user:      user,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// SendVoucher e-mails the voucher PDF to the reservation's client.
func (c *Client) SendVoucher(reservation *domain.Reservation, pdf []byte) error {
	m := mail.NewMsg()
	if err := m.From(fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail)); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := m.To(reservation.ClientEmail); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}

	m.Subject(fmt.Sprintf("Comprobante de pago - Reserva %s", reservation.ID))
	m.SetBodyString(mail.TypeTextPlain, voucherBody(reservation))
	if err := m.AttachReader(fmt.Sprintf("voucher-%s.pdf", reservation.ID), bytes.NewReader(pdf)); err != nil {
		return fmt.Errorf("attach voucher: %w", err)
	}

	client, err := mail.NewClient(c.host,
		mail.WithPort(c.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(c.user),
		mail.WithPassword(c.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSend(m); err != nil {
		return fmt.Errorf("send voucher (host=%s port=%d): %w", c.host, c.port, err)
	}
	return nil
}

func voucherBody(r *domain.Reservation) string {
	return fmt.Sprintf(
		"Estimado/a %s,\n\n"+
			"Adjuntamos el comprobante de pago de su reserva %s para el tour %q del %s.\n\n"+
			"Gracias por su preferencia.\n",
		r.ClientName, r.ID, r.TourName, r.Date.Format("02/01/2006"),
	)
}
