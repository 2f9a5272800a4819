package objects

import "github.com/danmuck/wirepack/packer"

// Limits caps decoded lengths. Zero means unlimited.
type Limits struct {
	MaxStringLen   uint32
	MaxSequenceLen uint32
}

var VectorPacker = packer.Record("Vector",
	packer.FieldOf("x", func(v *Vector) *int32 { return &v.X }, packer.Int32),
	packer.FieldOf("y", func(v *Vector) *int32 { return &v.Y }, packer.Int32),
	packer.FieldOf("z", func(v *Vector) *int32 { return &v.Z }, packer.Int32),
)

var LinePacker = packer.Record("Line",
	packer.FieldOf("sv", func(l *Line) *Vector { return &l.SV }, packer.Packer[Vector](VectorPacker)),
	packer.FieldOf("dv", func(l *Line) *Vector { return &l.DV }, packer.Packer[Vector](VectorPacker)),
)

var PlanePacker = packer.Record("Plane",
	packer.FieldOf("sv", func(p *Plane) *Vector { return &p.SV }, packer.Packer[Vector](VectorPacker)),
	packer.FieldOf("nv", func(p *Plane) *Vector { return &p.NV }, packer.Packer[Vector](VectorPacker)),
)

var SpherePacker = packer.Record("Sphere",
	packer.FieldOf("c", func(s *Sphere) *Vector { return &s.C }, packer.Packer[Vector](VectorPacker)),
	packer.FieldOf("r", func(s *Sphere) *int32 { return &s.R }, packer.Int32),
)

var ShapeTypePacker = packer.Enum[ShapeType](2)

var (
	PolygonPacker = newPolygonPacker(Limits{})
	ShapePacker   = newShapePacker(Limits{})
	ObjectPacker  = newObjectPacker(Limits{})
	ObjectsPacker = NewObjectsPacker(Limits{})
)

// NewObjectsPacker builds the Objects codec with decode limits applied to
// every string and sequence in the tree.
func NewObjectsPacker(l Limits) packer.SequencePacker[Object] {
	return packer.Sequence[Object](newObjectPacker(l)).WithMaxLen(l.MaxSequenceLen)
}

func newPolygonPacker(l Limits) packer.RecordPacker[Polygon] {
	vectors := packer.Sequence[Vector](VectorPacker).WithMaxLen(l.MaxSequenceLen)
	return packer.Record("Polygon",
		packer.FieldOf("vector", func(p *Polygon) *[]Vector { return &p.Vectors },
			packer.Packer[[]Vector](vectors)),
	)
}

func newShapePacker(l Limits) packer.UnionPacker[Shape, ShapeType] {
	return packer.Union("Shape",
		func(s *Shape) *ShapeType { return &s.Type },
		packer.Packer[ShapeType](ShapeTypePacker),
		packer.Case[Shape, ShapeType]{Tag: STNone},
		packer.Case[Shape, ShapeType]{Tag: STLine, Field: packer.FieldOf("line",
			func(s *Shape) *Line { return &s.Line }, packer.Packer[Line](LinePacker))},
		packer.Case[Shape, ShapeType]{Tag: STPolygon, Field: packer.FieldOf("polygon",
			func(s *Shape) *Polygon { return &s.Polygon }, packer.Packer[Polygon](newPolygonPacker(l)))},
		packer.Case[Shape, ShapeType]{Tag: STPlane, Field: packer.FieldOf("plane",
			func(s *Shape) *Plane { return &s.Plane }, packer.Packer[Plane](PlanePacker))},
		packer.Case[Shape, ShapeType]{Tag: STSphere, Field: packer.FieldOf("sphere",
			func(s *Shape) *Sphere { return &s.Sphere }, packer.Packer[Sphere](SpherePacker))},
	)
}

func newObjectPacker(l Limits) packer.RecordPacker[Object] {
	name := packer.ASCII.WithMaxLen(l.MaxStringLen)
	creator := packer.Optional[string](packer.UTF8.WithMaxLen(l.MaxStringLen))
	return packer.Record("Object",
		packer.FieldOf("name", func(o *Object) *string { return &o.Name }, packer.Packer[string](name)),
		packer.FieldOf("creator", func(o *Object) **string { return &o.Creator },
			packer.Packer[*string](creator)),
		packer.FieldOf("visible", func(o *Object) *bool { return &o.Visible }, packer.Bool),
		packer.FieldOf("shape", func(o *Object) *Shape { return &o.Shape },
			packer.Packer[Shape](newShapePacker(l))),
	)
}
