package report

// Color is a named RGB color shared by every output format
type Color struct {
	Name    string
	R, G, B uint8
}

// IsZero reports whether no color was set
func (c Color) IsZero() bool {
	return c.Name == ""
}

// Tint mixes the color with white, keeping pct percent of the color
func (c Color) Tint(pct int) (r, g, b uint8) {
	mix := func(v uint8) uint8 {
		return uint8(255 - (255-int(v))*pct/100)
	}
	return mix(c.R), mix(c.G), mix(c.B)
}

var (
	ShearPositive  = Color{Name: "shearpositive", R: 70, G: 130, B: 180} // steel blue
	ShearNegative  = Color{Name: "shearnegative", R: 220, G: 20, B: 60}  // crimson
	MomentPositive = Color{Name: "momentpositive", R: 34, G: 139, B: 34} // forest green
	MomentNegative = Color{Name: "momentnegative", R: 255, G: 140, B: 0} // dark orange
	TitleBlue      = Color{Name: "titleblue", R: 0, G: 51, B: 102}
)

// Palette returns every named color in definition order
func Palette() []Color {
	return []Color{ShearPositive, ShearNegative, MomentPositive, MomentNegative, TitleBlue}
}
