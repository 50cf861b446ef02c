package gfx

// OpKind identifies a recorded draw call.
type OpKind uint8

const (
	OpClear OpKind = iota + 1
	OpFill
	OpPixel
	OpCircle
	OpCircleGradient
	OpLine
	OpFillPolygon
	OpStrokePolygon
	OpText
)

func (k OpKind) String() string {
	switch k {
	case OpClear:
		return "clear"
	case OpFill:
		return "fill"
	case OpPixel:
		return "pixel"
	case OpCircle:
		return "circle"
	case OpCircleGradient:
		return "circle-gradient"
	case OpLine:
		return "line"
	case OpFillPolygon:
		return "fill-polygon"
	case OpStrokePolygon:
		return "stroke-polygon"
	case OpText:
		return "text"
	default:
		return "unknown"
	}
}

// Op is one recorded draw call. Only the fields meaningful for Kind are set.
type Op struct {
	Kind   OpKind
	Color  Color
	Points []Point
	Radius Scalar
	Width  Scalar
	Text   string
}

// Recorder is a Target that records draw calls instead of producing pixels.
type Recorder struct {
	W, H int
	Ops  []Op
}

func NewRecorder(w, h int) *Recorder { return &Recorder{W: w, H: h} }

// Reset drops recorded operations.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// Count returns the number of recorded operations of kind k.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Index returns the position of the first op of kind k, or -1.
func (r *Recorder) Index(k OpKind) int {
	for i, op := range r.Ops {
		if op.Kind == k {
			return i
		}
	}
	return -1
}

// LastIndex returns the position of the last op of kind k, or -1.
func (r *Recorder) LastIndex(k OpKind) int {
	for i := len(r.Ops) - 1; i >= 0; i-- {
		if r.Ops[i].Kind == k {
			return i
		}
	}
	return -1
}

func (r *Recorder) Size() (w, h int) { return r.W, r.H }

func (r *Recorder) Clear(c Color) { r.Ops = append(r.Ops, Op{Kind: OpClear, Color: c}) }
func (r *Recorder) Fill(c Color)  { r.Ops = append(r.Ops, Op{Kind: OpFill, Color: c}) }

func (r *Recorder) SetPixel(x, y int, c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpPixel, Color: c, Points: []Point{{X: Scalar(x), Y: Scalar(y)}}})
}

func (r *Recorder) FillCircle(x, y, rad Scalar, c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, Color: c, Points: []Point{{X: x, Y: y}}, Radius: rad})
}

func (r *Recorder) FillCircleGradient(x, y, rad Scalar, g *RadialGradient) {
	var c Color
	if g != nil && len(g.Stops) > 0 {
		c = g.Stops[0].Color
	}
	r.Ops = append(r.Ops, Op{Kind: OpCircleGradient, Color: c, Points: []Point{{X: x, Y: y}}, Radius: rad})
}

func (r *Recorder) Line(x0, y0, x1, y1, width Scalar, c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, Color: c, Points: []Point{{X: x0, Y: y0}, {X: x1, Y: y1}}, Width: width})
}

func (r *Recorder) FillPolygon(pts []Point, c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillPolygon, Color: c, Points: append([]Point(nil), pts...)})
}

func (r *Recorder) StrokePolygon(pts []Point, width Scalar, c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokePolygon, Color: c, Points: append([]Point(nil), pts...), Width: width})
}

func (r *Recorder) Text(x, y int, s string, c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Color: c, Points: []Point{{X: Scalar(x), Y: Scalar(y)}}, Text: s})
}
