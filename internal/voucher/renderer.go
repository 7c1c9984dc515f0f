package voucher

// TextStyle selects the font weight, size and alignment of a text instruction.
// The alignment anchor is the x coordinate: "C" centers on it, "R" ends at it.
type TextStyle struct {
	Size  float64 // 0 = default body size
	Bold  bool
	Align string // "L" (default), "C", "R"
}

// Renderer is the minimal drawing surface the builder emits instructions to.
// Coordinates are in page units (millimetres on A4); y grows downwards. Any
// PDF, image or HTML backend satisfying this interface is substitutable.
type Renderer interface {
	DrawText(x, y float64, text string, style TextStyle)
	DrawRect(x, y, w, h float64, fill bool)
	DrawLine(x1, y1, x2, y2 float64)
	NewPage()

	// Bytes finalizes the document and returns the rendered binary.
	Bytes() ([]byte, error)
}
