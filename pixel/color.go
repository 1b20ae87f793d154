package pixel

// Color is an 8-bit per channel RGBA color.
// Alpha is straight (not premultiplied).
type Color struct {
	R, G, B, A uint8
}

// RGBA returns a Color from its four components.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// MaxDistanceSq is the largest possible squared RGB distance (3 * 255²).
const MaxDistanceSq = 3 * 255 * 255

// DistanceSq returns the squared Euclidean distance between the RGB
// components of c and o. Alpha is ignored.
func (c Color) DistanceSq(o Color) int {
	dr := int(c.R) - int(o.R)
	dg := int(c.G) - int(o.G)
	db := int(c.B) - int(o.B)
	return dr*dr + dg*dg + db*db
}

// WithAlpha returns c with its alpha replaced by a.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// Key packs the RGB components into a 24-bit integer.
func (c Color) Key() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}
