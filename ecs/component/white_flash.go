package component

// WhiteFlash is the cosmetic hit flash. It gates nothing.
type WhiteFlash struct {
	Remaining float64
	Duration  float64
}

// Intensity is 1 right after a hit and fades to 0.
func (f *WhiteFlash) Intensity() float64 {
	if f == nil || f.Duration <= 0 || f.Remaining <= 0 {
		return 0
	}
	return f.Remaining / f.Duration
}

var WhiteFlashComponent = NewComponent[WhiteFlash]()
