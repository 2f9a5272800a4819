package objects

// Dimensions is the number of coordinates in a Vector.
const Dimensions = 3

type Vector struct {
	X int32
	Y int32
	Z int32
}

type Line struct {
	SV Vector
	DV Vector
}

type Plane struct {
	SV Vector
	NV Vector
}

type Sphere struct {
	C Vector
	R int32
}

type Polygon struct {
	Vectors []Vector
}

// ShapeType discriminates Shape. It is encoded in two bytes.
type ShapeType uint16

const (
	STNone    ShapeType = 0x0000
	STLine    ShapeType = 0x0001
	STPolygon ShapeType = 0x0002
	STPlane   ShapeType = 0x1234
	STSphere  ShapeType = 0x4321
)

func (t ShapeType) String() string {
	switch t {
	case STNone:
		return "ST_NONE"
	case STLine:
		return "ST_LINE"
	case STPolygon:
		return "ST_POLYGON"
	case STPlane:
		return "ST_PLANE"
	case STSphere:
		return "ST_SPHERE"
	default:
		return "ST_UNKNOWN"
	}
}

// Shape is a tagged union. Only the member selected by Type is encoded.
type Shape struct {
	Type    ShapeType
	Line    Line
	Polygon Polygon
	Plane   Plane
	Sphere  Sphere
}

func NewLine(l Line) Shape       { return Shape{Type: STLine, Line: l} }
func NewPolygon(p Polygon) Shape { return Shape{Type: STPolygon, Polygon: p} }
func NewPlane(p Plane) Shape     { return Shape{Type: STPlane, Plane: p} }
func NewSphere(s Sphere) Shape   { return Shape{Type: STSphere, Sphere: s} }

type Object struct {
	Name    string
	Creator *string
	Visible bool
	Shape   Shape
}

type Objects []Object
