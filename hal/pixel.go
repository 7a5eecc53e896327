package hal

// bgrxToRGBA converts one source row of BGRX pixels into opaque RGBA.
func bgrxToRGBA(dst, src []byte, pixels int) {
	for i := 0; i < pixels; i++ {
		j := i * 4
		if j+3 >= len(src) || j+3 >= len(dst) {
			return
		}
		dst[j+0] = src[j+2]
		dst[j+1] = src[j+1]
		dst[j+2] = src[j+0]
		dst[j+3] = 0xFF
	}
}

// rgbaFromBGRX converts a whole blit source into a tightly packed RGBA slice,
// flipping bottom-up sources so that row 0 is the top row.
func rgbaFromBGRX(dst []byte, src BlitSource) []byte {
	n := src.Width * src.Height * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for y := 0; y < src.Height; y++ {
		sy := y
		if !src.TopDown {
			sy = src.Height - 1 - y
		}
		off := sy * src.Stride
		if off < 0 || off+src.Width*4 > len(src.Pix) {
			break
		}
		bgrxToRGBA(dst[y*src.Width*4:], src.Pix[off:], src.Width)
	}
	return dst
}
