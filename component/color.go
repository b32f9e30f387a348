package component

// Color is a linear RGBA color with channels in [0,1]
type Color struct {
	R, G, B, A float64
}

// Scale multiplies all four channels
func (c Color) Scale(f float64) Color {
	return Color{c.R * f, c.G * f, c.B * f, c.A * f}
}
