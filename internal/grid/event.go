package grid

// Button identifies the mouse button of a pointer event.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonAuxiliary
	ButtonSecondary
)

// HitKind tells which part of the grid a pointer-down landed on.
type HitKind string

const (
	HitBackground  HitKind = "background"
	HitBody        HitKind = "body"
	HitLeftHandle  HitKind = "left_handle"
	HitRightHandle HitKind = "right_handle"
)

// Hit is the hit-test result of a pointer event.
type Hit struct {
	Kind          HitKind
	ReservationID string
}

// PointerEvent is a pointer event in grid coordinates: X and Y are
// relative to the top-left corner of the row.
type PointerEvent struct {
	X, Y   float64
	Button Button
	Hit    Hit
	// Target is the innermost element under the pointer, used to
	// resolve the row during a cross-row drag. It may be nil.
	Target *Element
}

// Keys understood by the keyboard layer.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyDelete     = "Delete"
	KeyBackspace  = "Backspace"
	KeyEscape     = "Escape"
	KeyEnter      = "Enter"
	KeySpace      = " "
)
