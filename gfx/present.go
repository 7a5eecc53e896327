package gfx

import "framehost/hal"

// Present stretches the whole surface into the destination rectangle
// (0,0)-(destW,destH) of dc. The stretch is anisotropic: the surface fills the
// destination regardless of aspect ratio.
func Present(s *Surface, dc hal.DeviceContext, destW, destH int) error {
	if dc == nil || !s.Paintable() || destW <= 0 || destH <= 0 {
		return nil
	}
	return dc.StretchBlit(s.BlitSource(), destW, destH)
}
