package voucher

import "fmt"

// Translator resolves user-facing labels by key. The builder treats it as an
// opaque lookup so the host application can plug in its own localization.
type Translator func(key string, args ...any) string

// defaultLabels are the built-in Spanish strings used when no translator is
// configured.
var defaultLabels = map[string]string{
	"voucher.title":                "COMPROBANTE DE PAGO",
	"voucher.reservation":          "Reserva N° %s",
	"voucher.issued":               "Fecha de emisión: %s",
	"voucher.client.heading":       "DATOS DEL CLIENTE",
	"voucher.client.name":          "Cliente: %s",
	"voucher.client.phone":         "Teléfono: %s",
	"voucher.client.email":         "Correo: %s",
	"voucher.service.heading":      "DETALLE DEL SERVICIO",
	"voucher.service.tour":         "Tour: %s",
	"voucher.service.date":         "Fecha: %s",
	"voucher.service.time":         "Hora: %s",
	"voucher.service.pickup":       "Punto de recojo: %s",
	"voucher.service.adults":       "%d adultos",
	"voucher.service.children":     ", %d niños",
	"voucher.service.requirements": "Requerimientos: %s",
	"voucher.table.heading":        "DETALLE DE PRECIOS",
	"voucher.table.concept":        "Concepto",
	"voucher.table.quantity":       "Cant.",
	"voucher.table.amount":         "Importe",
	"voucher.table.adults":         "Adultos",
	"voucher.table.children":       "Niños",
	"voucher.table.total":          "TOTAL",
	"voucher.payment.heading":      "PAGO",
	"voucher.payment.methods":      "Formas de pago: Tarjeta, Transferencia, Efectivo",
	"voucher.payment.due":          "Fecha límite de pago: %s",
	"payment.status.pendiente":     "Pago pendiente",
	"payment.status.pagado":        "Pagado",
	"payment.status.parcial":       "Pago parcial",
	"payment.status.reembolsado":   "Reembolsado",
	"voucher.qr.label":             "QR CODE",
	"voucher.qr.caption":           "Escanee para verificar la reserva",
	"voucher.terms.heading":        "TÉRMINOS Y CONDICIONES",
	"voucher.footer":               "Documento generado el %s",
}

// terms are the boilerplate lines of the terms and conditions block.
var terms = []string{
	"El presente comprobante es válido únicamente para la fecha y servicio indicados.",
	"Presentarse en el punto de recojo 15 minutos antes de la hora programada.",
	"Cancelaciones con menos de 48 horas de anticipación no son reembolsables.",
	"Los niños deben estar acompañados por un adulto responsable.",
	"La empresa no se responsabiliza por objetos olvidados en las unidades.",
}

// DefaultTranslator serves the built-in Spanish labels. Unknown keys resolve
// to the key itself.
func DefaultTranslator(key string, args ...any) string {
	label, ok := defaultLabels[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return label
	}
	return fmt.Sprintf(label, args...)
}
