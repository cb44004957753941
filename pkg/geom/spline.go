package geom

// CatmullRom evaluates the uniform Catmull-Rom spline through p1 and p2 at
// t in [0,1), using p0 and p3 as the outer control points.
func CatmullRom(p0, p1, p2, p3 Vec2, t float64) Vec2 {
	t2 := t * t
	t3 := t2 * t
	eval := func(a, b, c, d float64) float64 {
		return 0.5 * (2*b +
			(-a+c)*t +
			(2*a-5*b+4*c-d)*t2 +
			(-a+3*b-3*c+d)*t3)
	}
	return Vec2{
		X: eval(p0.X, p1.X, p2.X, p3.X),
		Y: eval(p0.Y, p1.Y, p2.Y, p3.Y),
	}
}

// SmoothPath densifies a control polyline into segments points per span and
// appends the final control point. The end points are duplicated as phantom
// controls so the curve passes through every control point.
func SmoothPath(control []Vec2, segments int) []Vec2 {
	if len(control) < 2 || segments < 1 {
		return append([]Vec2(nil), control...)
	}
	p := make([]Vec2, 0, len(control)+2)
	p = append(p, control[0])
	p = append(p, control...)
	p = append(p, control[len(control)-1])

	out := make([]Vec2, 0, (len(control)-1)*segments+1)
	for i := 1; i < len(p)-2; i++ {
		for k := 0; k < segments; k++ {
			t := float64(k) / float64(segments)
			out = append(out, CatmullRom(p[i-1], p[i], p[i+1], p[i+2], t))
		}
	}
	return append(out, control[len(control)-1])
}
