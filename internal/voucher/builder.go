package voucher

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"tourops/internal/domain"
)

// Layout constants, A4 millimetres.
const (
	pageWidth  = 210.0
	pageHeight = 297.0

	topMargin   = 15.0
	leftMargin  = 15.0
	rightMargin = 195.0

	lineHeight = 6.0
	smallLine  = 4.5

	// breakTrigger is the cursor position past which a section starts on a
	// new page instead of overflowing into the footer area.
	breakTrigger = 230.0

	footerY = 282.0

	qrSize = 30.0

	currencyPrefix = "S/ "

	wrapWidth = 70 // runes per wrapped body line
)

// DocumentCursor tracks the drawing position while sections are emitted. It
// is threaded through every section function and never shared between builds.
type DocumentCursor struct {
	X, Y float64
	Page int
}

// CompanyInfo is the operator identity printed in the voucher header.
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
	TaxID   string
}

// Builder assembles a printable payment voucher for one reservation as a
// stream of drawing instructions. A Builder (and its Renderer) is single-use:
// create a fresh pair per document.
type Builder struct {
	r       Renderer
	t       Translator
	company CompanyInfo
	now     func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithTranslator overrides the built-in Spanish labels.
func WithTranslator(t Translator) Option {
	return func(b *Builder) { b.t = t }
}

// WithClock overrides the issue/generation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// NewBuilder creates a voucher builder emitting to the given renderer.
func NewBuilder(r Renderer, company CompanyInfo, opts ...Option) *Builder {
	b := &Builder{
		r:       r,
		t:       DefaultTranslator,
		company: company,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build lays out the complete voucher for a reservation. It returns
// ErrMalformedReservation when fields required for document assembly are
// missing; rendering failures surface later, from Export.
func (b *Builder) Build(reservation *domain.Reservation) error {
	if err := validate(reservation); err != nil {
		return err
	}

	cur := DocumentCursor{X: leftMargin, Y: topMargin, Page: 1}
	cur = b.header(cur)
	cur = b.title(cur)
	cur = b.meta(cur, reservation)
	cur = b.rule(cur)
	cur = b.clientBlock(cur, reservation)
	cur = b.serviceBlock(cur, reservation)
	cur = b.priceTable(cur, reservation)
	cur = b.paymentBlock(cur, reservation)
	cur = b.qrPlaceholder(cur)
	cur = b.termsBlock(cur)
	b.footer()
	return nil
}

// Export finalizes the document and returns it as an exportable binary.
func (b *Builder) Export() ([]byte, error) {
	data, err := b.r.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderBackend, err)
	}
	return data, nil
}

// WriteTo streams the finished document, e.g. into an HTTP response for
// download or inline preview.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	data, err := b.Export()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// SaveFile writes the finished document to disk.
func (b *Builder) SaveFile(path string) error {
	data, err := b.Export()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func validate(r *domain.Reservation) error {
	switch {
	case r == nil:
		return fmt.Errorf("%w: nil reservation", ErrMalformedReservation)
	case r.ClientName == "":
		return fmt.Errorf("%w: missing client name", ErrMalformedReservation)
	case r.TourName == "":
		return fmt.Errorf("%w: missing tour name", ErrMalformedReservation)
	case r.Date.IsZero():
		return fmt.Errorf("%w: missing date", ErrMalformedReservation)
	case r.Adults < 1:
		// The price table derives unit prices from the party size.
		return fmt.Errorf("%w: no adults", ErrMalformedReservation)
	case r.Children < 0:
		return fmt.Errorf("%w: negative children count", ErrMalformedReservation)
	case r.Total < 0:
		return fmt.Errorf("%w: negative total", ErrMalformedReservation)
	}
	return nil
}

// pageBreak starts a new page when the cursor has run past the trigger.
// Every section except the header calls this before drawing.
func (b *Builder) pageBreak(cur DocumentCursor) DocumentCursor {
	if cur.Y > breakTrigger {
		b.r.NewPage()
		cur.Y = topMargin
		cur.Page++
	}
	return cur
}

// header draws the company identity block. Always first on page 1, never
// subject to the page-break check.
func (b *Builder) header(cur DocumentCursor) DocumentCursor {
	b.r.DrawText(cur.X, cur.Y, b.company.Name, TextStyle{Size: 14, Bold: true})
	cur.Y += 7

	small := TextStyle{Size: 9}
	lines := make([]string, 0, 4)
	if b.company.Address != "" {
		lines = append(lines, b.company.Address)
	}
	if b.company.Phone != "" {
		lines = append(lines, "Tel: "+b.company.Phone)
	}
	if b.company.Email != "" {
		lines = append(lines, b.company.Email)
	}
	if b.company.TaxID != "" {
		lines = append(lines, "RUC: "+b.company.TaxID)
	}
	for _, line := range lines {
		b.r.DrawText(cur.X, cur.Y, line, small)
		cur.Y += smallLine
	}
	cur.Y += 5
	return cur
}

func (b *Builder) title(cur DocumentCursor) DocumentCursor {
	b.r.DrawText(pageWidth/2, cur.Y, b.t("voucher.title"), TextStyle{Size: 13, Bold: true, Align: "C"})
	cur.Y += 10
	return cur
}

// meta draws the reservation id and issue date, left and right aligned on one
// line.
func (b *Builder) meta(cur DocumentCursor, r *domain.Reservation) DocumentCursor {
	b.r.DrawText(cur.X, cur.Y, b.t("voucher.reservation", r.ID), TextStyle{Size: 10})
	b.r.DrawText(rightMargin, cur.Y, b.t("voucher.issued", b.now().Format("02/01/2006")), TextStyle{Size: 10, Align: "R"})
	cur.Y += 8
	return cur
}

func (b *Builder) rule(cur DocumentCursor) DocumentCursor {
	b.r.DrawLine(leftMargin, cur.Y, rightMargin, cur.Y)
	cur.Y += 6
	return cur
}

// clientBlock draws the client fields, one line each. Absent optional fields
// are skipped and do not advance the cursor.
func (b *Builder) clientBlock(cur DocumentCursor, r *domain.Reservation) DocumentCursor {
	cur = b.pageBreak(cur)
	cur = b.heading(cur, b.t("voucher.client.heading"))

	body := TextStyle{Size: 10}
	b.r.DrawText(cur.X, cur.Y, b.t("voucher.client.name", r.ClientName), body)
	cur.Y += lineHeight
	b.r.DrawText(cur.X, cur.Y, b.t("voucher.client.phone", r.ClientPhone), body)
	cur.Y += lineHeight
	if r.ClientEmail != "" {
		b.r.DrawText(cur.X, cur.Y, b.t("voucher.client.email", r.ClientEmail), body)
		cur.Y += lineHeight
	}
	cur.Y += 4
	return cur
}

// serviceBlock draws the tour details and party composition.
func (b *Builder) serviceBlock(cur DocumentCursor, r *domain.Reservation) DocumentCursor {
	cur = b.pageBreak(cur)
	cur = b.heading(cur, b.t("voucher.service.heading"))

	body := TextStyle{Size: 10}
	b.r.DrawText(cur.X, cur.Y, b.t("voucher.service.tour", r.TourName), body)
	cur.Y += lineHeight
	b.r.DrawText(cur.X, cur.Y, b.t("voucher.service.date", r.Date.Format("02/01/2006")), body)
	cur.Y += lineHeight
	b.r.DrawText(cur.X, cur.Y, b.t("voucher.service.time", r.Time), body)
	cur.Y += lineHeight
	b.r.DrawText(cur.X, cur.Y, b.t("voucher.service.pickup", r.PickupLocation), body)
	cur.Y += lineHeight

	party := b.t("voucher.service.adults", r.Adults)
	if r.Children > 0 {
		party += b.t("voucher.service.children", r.Children)
	}
	b.r.DrawText(cur.X, cur.Y, party, body)
	cur.Y += lineHeight

	if r.SpecialRequirements != "" {
		for _, line := range wrap(b.t("voucher.service.requirements", r.SpecialRequirements), wrapWidth) {
			b.r.DrawText(cur.X, cur.Y, line, body)
			cur.Y += lineHeight
		}
	}
	cur.Y += 4
	return cur
}

// priceTable draws the three-column concept/quantity/amount table. The
// itemized rows use the derived unit prices; the total row always prints the
// reservation's authoritative total, even when the itemized rows do not sum
// to it.
func (b *Builder) priceTable(cur DocumentCursor, r *domain.Reservation) DocumentCursor {
	cur = b.pageBreak(cur)
	cur = b.heading(cur, b.t("voucher.table.heading"))

	const (
		conceptX  = leftMargin + 2
		quantityX = 140.0
		amountX   = rightMargin - 2
	)

	// Header row on a filled band.
	b.r.DrawRect(leftMargin, cur.Y-4.5, rightMargin-leftMargin, 6.5, true)
	headerStyle := TextStyle{Size: 10, Bold: true}
	b.r.DrawText(conceptX, cur.Y, b.t("voucher.table.concept"), headerStyle)
	b.r.DrawText(quantityX, cur.Y, b.t("voucher.table.quantity"), TextStyle{Size: 10, Bold: true, Align: "C"})
	b.r.DrawText(amountX, cur.Y, b.t("voucher.table.amount"), TextStyle{Size: 10, Bold: true, Align: "R"})
	cur.Y += 8

	adultPrice, childPrice := r.UnitPrices()
	body := TextStyle{Size: 10}

	b.r.DrawText(conceptX, cur.Y, b.t("voucher.table.adults"), body)
	b.r.DrawText(quantityX, cur.Y, fmt.Sprintf("%d", r.Adults), TextStyle{Size: 10, Align: "C"})
	b.r.DrawText(amountX, cur.Y, money(adultPrice*float64(r.Adults)), TextStyle{Size: 10, Align: "R"})
	cur.Y += 7

	if r.Children > 0 {
		b.r.DrawText(conceptX, cur.Y, b.t("voucher.table.children"), body)
		b.r.DrawText(quantityX, cur.Y, fmt.Sprintf("%d", r.Children), TextStyle{Size: 10, Align: "C"})
		b.r.DrawText(amountX, cur.Y, money(childPrice*float64(r.Children)), TextStyle{Size: 10, Align: "R"})
		cur.Y += 7
	}

	b.r.DrawLine(leftMargin, cur.Y-3, rightMargin, cur.Y-3)

	totalStyle := TextStyle{Size: 11, Bold: true}
	b.r.DrawText(conceptX, cur.Y+2, b.t("voucher.table.total"), totalStyle)
	b.r.DrawText(amountX, cur.Y+2, money(r.Total), TextStyle{Size: 11, Bold: true, Align: "R"})
	cur.Y += 10
	return cur
}

// paymentBlock draws the payment status, the accepted payment methods and,
// for pending payments only, the due date (one day before the tour).
func (b *Builder) paymentBlock(cur DocumentCursor, r *domain.Reservation) DocumentCursor {
	cur = b.pageBreak(cur)
	cur = b.heading(cur, b.t("voucher.payment.heading"))

	body := TextStyle{Size: 10}
	b.r.DrawText(cur.X, cur.Y, b.t("payment.status."+string(r.PaymentStatus)), TextStyle{Size: 10, Bold: true})
	cur.Y += lineHeight
	b.r.DrawText(cur.X, cur.Y, b.t("voucher.payment.methods"), body)
	cur.Y += lineHeight

	if r.PaymentStatus == domain.PaymentStatusPending {
		due := r.Date.AddDate(0, 0, -1)
		b.r.DrawText(cur.X, cur.Y, b.t("voucher.payment.due", due.Format("02/01/2006")), body)
		cur.Y += lineHeight
	}
	cur.Y += 4
	return cur
}

// qrPlaceholder reserves a fixed-size square with a centered label and a
// caption below, regardless of target content.
func (b *Builder) qrPlaceholder(cur DocumentCursor) DocumentCursor {
	cur = b.pageBreak(cur)

	b.r.DrawRect(cur.X, cur.Y, qrSize, qrSize, false)
	b.r.DrawText(cur.X+qrSize/2, cur.Y+qrSize/2, b.t("voucher.qr.label"), TextStyle{Size: 8, Align: "C"})
	cur.Y += qrSize + 5
	b.r.DrawText(cur.X, cur.Y, b.t("voucher.qr.caption"), TextStyle{Size: 8})
	cur.Y += 7
	return cur
}

func (b *Builder) termsBlock(cur DocumentCursor) DocumentCursor {
	cur = b.pageBreak(cur)
	cur = b.heading(cur, b.t("voucher.terms.heading"))

	small := TextStyle{Size: 8}
	for i, line := range terms {
		b.r.DrawText(cur.X, cur.Y, fmt.Sprintf("%d. %s", i+1, line), small)
		cur.Y += smallLine
	}
	return cur
}

// footer is pinned relative to the page bottom, on the page containing the
// content end.
func (b *Builder) footer() {
	b.r.DrawLine(leftMargin, footerY-4, rightMargin, footerY-4)
	stamp := b.t("voucher.footer", b.now().Format("02/01/2006 15:04"))
	b.r.DrawText(pageWidth/2, footerY, stamp, TextStyle{Size: 8, Align: "C"})
}

func (b *Builder) heading(cur DocumentCursor, text string) DocumentCursor {
	b.r.DrawText(cur.X, cur.Y, text, TextStyle{Size: 11, Bold: true})
	cur.Y += 7
	return cur
}

func money(v float64) string {
	return fmt.Sprintf("%s%.2f", currencyPrefix, v)
}

// wrap splits text into lines of at most width runes, breaking on spaces.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len([]rune(current))+1+len([]rune(word)) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	return append(lines, current)
}
