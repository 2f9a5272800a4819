package objects

import (
	"fmt"
	"io"
	"strings"
)

const indentUnit = "    "

// Fprint writes an indented, human readable rendering of objs to w.
func Fprint(w io.Writer, objs Objects) error {
	_, err := io.WriteString(w, Format(objs))
	return err
}

// Format renders objs the way Fprint does.
func Format(objs Objects) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Objects (%d) {\n", len(objs))
	for i, o := range objs {
		formatObject(&b, 1, i, o)
	}
	b.WriteString("}\n")
	return b.String()
}

func line(b *strings.Builder, level int, format string, args ...any) {
	b.WriteString(strings.Repeat(indentUnit, level))
	fmt.Fprintf(b, format, args...)
	b.WriteByte('\n')
}

func formatObject(b *strings.Builder, level, index int, o Object) {
	line(b, level, "[%d] Object {", index)
	line(b, level+1, "name: %q", o.Name)
	if o.Creator != nil {
		line(b, level+1, "creator: %q", *o.Creator)
	} else {
		line(b, level+1, "creator: <none>")
	}
	line(b, level+1, "visible: %t", o.Visible)
	formatShape(b, level+1, o.Shape)
	line(b, level, "}")
}

func formatShape(b *strings.Builder, level int, s Shape) {
	switch s.Type {
	case STLine:
		line(b, level, "shape: %s {", s.Type)
		line(b, level+1, "sv: %s", s.Line.SV)
		line(b, level+1, "dv: %s", s.Line.DV)
	case STPlane:
		line(b, level, "shape: %s {", s.Type)
		line(b, level+1, "sv: %s", s.Plane.SV)
		line(b, level+1, "nv: %s", s.Plane.NV)
	case STSphere:
		line(b, level, "shape: %s {", s.Type)
		line(b, level+1, "c: %s", s.Sphere.C)
		line(b, level+1, "r: %d", s.Sphere.R)
	case STPolygon:
		line(b, level, "shape: %s {", s.Type)
		for i, v := range s.Polygon.Vectors {
			line(b, level+1, "vector[%d]: %s", i, v)
		}
	default:
		line(b, level, "shape: %s", s.Type)
		return
	}
	line(b, level, "}")
}

func (v Vector) String() string {
	return fmt.Sprintf("{ x: %d, y: %d, z: %d }", v.X, v.Y, v.Z)
}
