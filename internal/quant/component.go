package quant

// Tensor is a dense row-major float32 matrix.
type Tensor struct {
	Rows, Cols int
	Data       []float32
}

// At returns the element at row r, column c.
func (t Tensor) At(r, c int) float32 { return t.Data[r*t.Cols+c] }

// Component is a loaded model component: scheduling metadata plus the
// weight tensors its pipeline stage computes with. The footprint is an
// estimate derived from the manifest parameter count, not the size of
// the tensors held here.
type Component struct {
	Name           string
	Precision      Precision
	FootprintBytes int64
	Quantizable    bool

	// Wiring dimensions from the manifest (zero when not applicable).
	WidthIn   int
	WidthOut  int
	CondWidth int

	tensors map[string]Tensor
}

// Tensor returns a named weight tensor.
func (c *Component) Tensor(name string) (Tensor, bool) {
	t, ok := c.tensors[name]
	return t, ok
}
