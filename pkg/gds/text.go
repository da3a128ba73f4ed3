package gds

import "fmt"

// TextAnchor is the GDSII PRESENTATION corner code placing the label
// relative to its anchor point.
type TextAnchor int

const (
	AnchorTopLeft      TextAnchor = 0
	AnchorTopCenter    TextAnchor = 1
	AnchorTopRight     TextAnchor = 2
	AnchorMiddleLeft   TextAnchor = 4
	AnchorCenter       TextAnchor = 5
	AnchorMiddleRight  TextAnchor = 6
	AnchorBottomLeft   TextAnchor = 8
	AnchorBottomCenter TextAnchor = 9
	AnchorBottomRight  TextAnchor = 10
)

// Text is a non-printing label (GDSII TEXT). Its orientation is a
// first-class attribute: Rotate and Reflect update the label's own
// Rotation and XReflection in addition to moving the anchor point.
type Text struct {
	shape
	Text          string
	Anchor        TextAnchor
	Rotation      float64 // degrees, 0 = unset
	Magnification float64 // 1 = unset
	XReflection   bool
}

// NewText builds a label anchored at position. The datatype field
// carries the GDSII texttype.
func NewText(text string, position Point, anchor TextAnchor, layer, texttype int) *Text {
	return &Text{
		shape:         shape{points: []Point{position}, layer: layer, datatype: texttype},
		Text:          text,
		Anchor:        anchor,
		Magnification: 1,
	}
}

func (t *Text) String() string {
	p := t.points[0]
	return fmt.Sprintf("Text (%q, at (%g, %g), layer %d, texttype %d)", t.Text, p.X, p.Y, t.layer, t.datatype)
}

// Position returns the anchor point.
func (t *Text) Position() Point {
	return t.points[0]
}

func (t *Text) Copy() Element {
	cp := *t
	cp.shape = t.copyShape()
	return &cp
}

// Area is always zero; labels are non-printing.
func (t *Text) Area() float64 {
	return 0
}

// Rotate composes angle with the label's own rotation and moves the
// anchor point.
func (t *Text) Rotate(angle float64, center Point) {
	t.Rotation += angle
	t.shape.Rotate(angle, center)
}

// Reflect toggles the label's x-reflection and mirrors the anchor
// point. Reflecting in y additionally rotates the label by 180 degrees
// so the composed orientation matches the mirrored geometry.
func (t *Text) Reflect(axis Axis, origin Point) error {
	if axis != AxisX && axis != AxisY {
		return fmt.Errorf("unknown reflection axis %d", axis)
	}
	t.XReflection = !t.XReflection
	if err := t.shape.Reflect(axis, origin); err != nil {
		return err
	}
	if axis == AxisY {
		t.Rotate(180, origin)
	}
	return nil
}

func (t *Text) hasTransform() bool {
	return t.XReflection || t.Rotation != 0 || t.Magnification != 1
}

func (t *Text) encode(w *recordWriter, mul float64, diags *Diagnostics) error {
	w.writeEmpty(recText)
	w.writeInt16(recLayer, t.layer)
	w.writeInt16(recTextType, t.datatype)
	w.writeUint16(recPresentation, uint16(t.Anchor))
	if t.hasTransform() {
		var word uint16
		if t.XReflection {
			word |= 0x8000
		}
		if t.Magnification != 1 {
			word |= 0x0004
		}
		if t.Rotation != 0 {
			word |= 0x0002
		}
		w.writeUint16(recSTrans, word)
		if t.Magnification != 1 {
			w.writeReal8(recMag, t.Magnification)
		}
		if t.Rotation != 0 {
			w.writeReal8(recAngle, t.Rotation)
		}
	}
	w.writeInt32(recXY, scaledCoords(t.points, mul)...)
	w.writeString(recString, t.Text)
	w.writeEmpty(recEndEl)
	return w.Err()
}
