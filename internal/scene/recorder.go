package scene

// OpKind identifies a recorded surface call.
type OpKind int

const (
	OpClear OpKind = iota
	OpFillCircle
	OpStrokeCircle
	OpFillText
	OpSave
	OpRestore
	OpTranslate
	OpScale
)

func (k OpKind) String() string {
	switch k {
	case OpClear:
		return "clear"
	case OpFillCircle:
		return "fill-circle"
	case OpStrokeCircle:
		return "stroke-circle"
	case OpFillText:
		return "fill-text"
	case OpSave:
		return "save"
	case OpRestore:
		return "restore"
	case OpTranslate:
		return "translate"
	case OpScale:
		return "scale"
	default:
		return "unknown"
	}
}

// Op is one recorded call. X, Y and R are the arguments as passed;
// Transform is the transform active at the time of the call.
type Op struct {
	Kind      OpKind
	X, Y, R   float64
	Text      string
	Paint     Paint
	Stroke    Stroke
	Style     TextStyle
	Transform Transform
}

// Device returns the op's anchor point in device space.
func (o Op) Device() (float64, float64) {
	return o.Transform.Apply(o.X, o.Y)
}

// Recorder is a Surface that records calls instead of drawing them.
// Clear discards the previous frame's ops.
type Recorder struct {
	TransformStack

	width, height float64
	ops           []Op
}

// NewRecorder creates a recorder reporting the given size.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{width: width, height: height}
}

// Resize changes the reported size.
func (r *Recorder) Resize(width, height float64) {
	r.width = width
	r.height = height
}

func (r *Recorder) Size() (float64, float64) {
	return r.width, r.height
}

func (r *Recorder) Clear() {
	r.ops = r.ops[:0]
	r.ResetTransform()
	r.record(Op{Kind: OpClear})
}

func (r *Recorder) FillCircle(x, y, radius float64, paint Paint) {
	r.record(Op{Kind: OpFillCircle, X: x, Y: y, R: radius, Paint: paint})
}

func (r *Recorder) StrokeCircle(x, y, radius float64, stroke Stroke) {
	r.record(Op{Kind: OpStrokeCircle, X: x, Y: y, R: radius, Stroke: stroke})
}

func (r *Recorder) FillText(x, y float64, text string, style TextStyle) {
	r.record(Op{Kind: OpFillText, X: x, Y: y, Text: text, Style: style})
}

func (r *Recorder) Save() {
	r.TransformStack.Save()
	r.record(Op{Kind: OpSave})
}

func (r *Recorder) Restore() {
	r.TransformStack.Restore()
	r.record(Op{Kind: OpRestore})
}

func (r *Recorder) Translate(dx, dy float64) {
	r.TransformStack.Translate(dx, dy)
	r.record(Op{Kind: OpTranslate, X: dx, Y: dy})
}

func (r *Recorder) Scale(sx, sy float64) {
	r.TransformStack.Scale(sx, sy)
	r.record(Op{Kind: OpScale, X: sx, Y: sy})
}

func (r *Recorder) record(op Op) {
	op.Transform = r.Current()
	r.ops = append(r.ops, op)
}

// Ops returns the ops recorded since the last Clear.
func (r *Recorder) Ops() []Op {
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Count returns how many recorded ops have the given kind.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
