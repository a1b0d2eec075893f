package layers

import "fmt"

// FilterFn is a CSS-style filter function.
type FilterFn string

// Filter functions, in the order the background chain applies them.
const (
	FilterBrightness FilterFn = "brightness" // percent, 100 = identity
	FilterContrast   FilterFn = "contrast"   // percent, 100 = identity
	FilterSaturate   FilterFn = "saturate"   // percent, 100 = identity
	FilterBlur       FilterFn = "blur"       // px standard deviation
	FilterHueRotate  FilterFn = "hue-rotate" // degrees
	FilterSepia      FilterFn = "sepia"      // percent, 0 = identity
)

// FilterOp is one step of a filter chain.
type FilterOp struct {
	Fn     FilterFn `json:"fn"`
	Amount float64  `json:"amount"`
}

func (op FilterOp) String() string {
	switch op.Fn {
	case FilterBlur:
		return fmt.Sprintf("%s(%gpx)", op.Fn, op.Amount)
	case FilterHueRotate:
		return fmt.Sprintf("%s(%gdeg)", op.Fn, op.Amount)
	default:
		return fmt.Sprintf("%s(%g%%)", op.Fn, op.Amount)
	}
}

// Filter is an ordered filter chain, applied first to last.
type Filter []FilterOp

// Then returns a copy of f with op appended. f is never modified.
func (f Filter) Then(op FilterOp) Filter {
	out := make(Filter, len(f), len(f)+1)
	copy(out, f)
	return append(out, op)
}

// TransformFn is a CSS-style transform function.
type TransformFn string

// Transform functions.
const (
	TransformScale     TransformFn = "scale"     // X = factor (uniform)
	TransformRotate    TransformFn = "rotate"    // X = degrees, clockwise
	TransformTranslate TransformFn = "translate" // X, Y = px
)

// TransformOp is one step of a transform list.
type TransformOp struct {
	Fn TransformFn `json:"fn"`
	X  float64     `json:"x"`
	Y  float64     `json:"y"`
}

// Scale returns a uniform scale op.
func Scale(s float64) TransformOp { return TransformOp{Fn: TransformScale, X: s, Y: s} }

// Rotate returns a rotation op in degrees.
func Rotate(deg float64) TransformOp { return TransformOp{Fn: TransformRotate, X: deg} }

// Translate returns a translation op in pixels.
func Translate(x, y float64) TransformOp { return TransformOp{Fn: TransformTranslate, X: x, Y: y} }

func (op TransformOp) String() string {
	switch op.Fn {
	case TransformScale:
		return fmt.Sprintf("scale(%g)", op.X)
	case TransformRotate:
		return fmt.Sprintf("rotate(%gdeg)", op.X)
	default:
		return fmt.Sprintf("translate(%gpx, %gpx)", op.X, op.Y)
	}
}

// Transform is an ordered transform list about the element center. Like
// CSS, each op is applied in the coordinate space produced by the ops
// before it.
type Transform []TransformOp

// Then returns a copy of t with op appended. t is never modified.
func (t Transform) Then(op TransformOp) Transform {
	out := make(Transform, len(t), len(t)+1)
	copy(out, t)
	return append(out, op)
}
