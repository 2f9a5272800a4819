package objects

func strptr(s string) *string { return &s }

// Sample returns the four-object set exchanged by packctl.
func Sample() Objects {
	return Objects{
		{
			Name:    "A line",
			Creator: strptr("Øve"),
			Visible: true,
			Shape:   NewLine(Line{SV: Vector{1, 2, 3}, DV: Vector{4, 5, 6}}),
		},
		{
			Name:    "A polygon",
			Creator: strptr("Björk"),
			Visible: true,
			Shape: NewPolygon(Polygon{Vectors: []Vector{
				{1, 1, 0},
				{-1, 1, 0},
				{0, 0, 2},
			}}),
		},
		{
			Name:    "A plane",
			Creator: strptr("José"),
			Visible: false,
			Shape:   NewPlane(Plane{SV: Vector{1, 2, 3}, NV: Vector{-1, -2, -3}}),
		},
		{
			Name:    "A sphere",
			Visible: false,
			Shape:   NewSphere(Sphere{C: Vector{1, 2, 3}, R: 10}),
		},
	}
}
