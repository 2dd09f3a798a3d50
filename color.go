package jpeg

// writeGrayscaleMCU copies comp's 8x8 tile into the row scratch buffer at
// MCU column mcuX. Grounded on jpeg_dec.c's _grayscale_convert_mcu.
func writeGrayscaleMCU(f *frame, comp *component, mcuX int) {
	obase := mcuX * f.mcuSizeX
	pbase := 0
	for row := 0; row < f.mcuSizeY; row++ {
		copy(f.rowScratch[obase:obase+8], comp.pixels[pbase:pbase+8])
		pbase += 8
		obase += f.paddedWidth
	}
}

// writeColorMCU converts one MCU's worth of Y/Cb/Cr 8x8 tiles to
// interleaved RGB in the row scratch buffer at MCU column mcuX, using the
// integerized BT.601 full-range matrix reproduced exactly from
// jpeg_dec.c's _h1v1_convert_mcu. The inner scaled-luma value is named y8
// to avoid the outer/inner `y` shadow DESIGN NOTES flags in the original.
func writeColorMCU(f *frame, y, cb, cr *component, mcuX int) {
	obase := mcuX * f.mcuSizeX * 3
	pbase := 0
	for row := 0; row < f.mcuSizeY; row++ {
		for col := 0; col < f.mcuSizeX; col++ {
			y8 := int32(y.pixels[pbase+col]) << 8
			cb8 := int32(cb.pixels[pbase+col]) - 128
			cr8 := int32(cr.pixels[pbase+col]) - 128

			r := clampToByte((y8 + 359*cr8 + 128) >> 8)
			g := clampToByte((y8 - 88*cb8 - 183*cr8 + 128) >> 8)
			b := clampToByte((y8 + 454*cb8 + 128) >> 8)

			o := obase + col*3
			f.rowScratch[o] = r
			f.rowScratch[o+1] = g
			f.rowScratch[o+2] = b
		}
		pbase += 8
		obase += f.paddedWidth * 3
	}
}
