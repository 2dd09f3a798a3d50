package jpeg

// Fixed-point AAN/Chen 8-point IDCT constants, reproduced exactly from
// jpeg_dec.c. Every shift, bias, and order of operation below must match
// the reference bit-for-bit — spec.md §4.8 calls this out explicitly and
// the two all-zero-AC fast paths are part of that contract, not an
// optional optimization.
const (
	w1 = 2841
	w2 = 2676
	w3 = 2408
	w5 = 1609
	w6 = 1108
	w7 = 565
)

func clampToByte(x int32) byte {
	if x < 0 {
		return 0
	}
	if x > 0xff {
		return 0xff
	}
	return byte(x)
}

// idctRow performs the row pass of the separable IDCT in place over one
// 8-entry row of blk (blk has 64 entries total; rows are blk[0:8], [8:16], ...).
func idctRow(blk []int32) {
	x1 := blk[4] << 11
	x2 := blk[6]
	x3 := blk[2]
	x4 := blk[1]
	x5 := blk[7]
	x6 := blk[5]
	x7 := blk[3]

	if x1|x2|x3|x4|x5|x6|x7 == 0 {
		v := blk[0] << 3
		for i := 0; i < 8; i++ {
			blk[i] = v
		}
		return
	}

	x0 := (blk[0] << 11) + 128
	x8 := w7 * (x4 + x5)
	x4 = x8 + (w1-w7)*x4
	x5 = x8 - (w1+w7)*x5
	x8 = w3 * (x6 + x7)
	x6 = x8 - (w3-w5)*x6
	x7 = x8 - (w3+w5)*x7
	x8 = x0 + x1
	x0 -= x1
	x1 = w6 * (x3 + x2)
	x2 = x1 - (w2+w6)*x2
	x3 = x1 + (w2-w6)*x3
	x1 = x4 + x6
	x4 -= x6
	x6 = x5 + x7
	x5 -= x7
	x7 = x8 + x3
	x8 -= x3
	x3 = x0 + x2
	x0 -= x2
	x2 = (181*(x4+x5) + 128) >> 8
	x4 = (181*(x4-x5) + 128) >> 8

	blk[0] = (x7 + x1) >> 8
	blk[1] = (x3 + x2) >> 8
	blk[2] = (x0 + x4) >> 8
	blk[3] = (x8 + x6) >> 8
	blk[4] = (x8 - x6) >> 8
	blk[5] = (x0 - x4) >> 8
	blk[6] = (x3 - x2) >> 8
	blk[7] = (x7 - x1) >> 8
}

// idctCol performs the column pass, reading the already row-transformed
// vector blk (strided by 8) and writing 8 level-shifted, saturated output
// bytes into out at the given stride.
func idctCol(blk []int32, out []byte, outBase, stride int) {
	x1 := blk[8*4] << 8
	x2 := blk[8*6]
	x3 := blk[8*2]
	x4 := blk[8*1]
	x5 := blk[8*7]
	x6 := blk[8*5]
	x7 := blk[8*3]

	if x1|x2|x3|x4|x5|x6|x7 == 0 {
		v := clampToByte(((blk[0] + 32) >> 6) + 128)
		p := outBase
		for i := 0; i < 8; i++ {
			out[p] = v
			p += stride
		}
		return
	}

	x0 := (blk[0] << 8) + 8192
	x8 := w7*(x4+x5) + 4
	x4 = (x8 + (w1-w7)*x4) >> 3
	x5 = (x8 - (w1+w7)*x5) >> 3
	x8 = w3*(x6+x7) + 4
	x6 = (x8 - (w3-w5)*x6) >> 3
	x7 = (x8 - (w3+w5)*x7) >> 3
	x8 = x0 + x1
	x0 -= x1
	x1 = w6*(x3+x2) + 4
	x2 = (x1 - (w2+w6)*x2) >> 3
	x3 = (x1 + (w2-w6)*x3) >> 3
	x1 = x4 + x6
	x4 -= x6
	x6 = x5 + x7
	x5 -= x7
	x7 = x8 + x3
	x8 -= x3
	x3 = x0 + x2
	x0 -= x2
	x2 = (181*(x4+x5) + 128) >> 8
	x4 = (181*(x4-x5) + 128) >> 8

	p := outBase
	out[p] = clampToByte(((x7 + x1) >> 14) + 128)
	p += stride
	out[p] = clampToByte(((x3 + x2) >> 14) + 128)
	p += stride
	out[p] = clampToByte(((x0 + x4) >> 14) + 128)
	p += stride
	out[p] = clampToByte(((x8 + x6) >> 14) + 128)
	p += stride
	out[p] = clampToByte(((x8 - x6) >> 14) + 128)
	p += stride
	out[p] = clampToByte(((x0 - x4) >> 14) + 128)
	p += stride
	out[p] = clampToByte(((x3 - x2) >> 14) + 128)
	p += stride
	out[p] = clampToByte(((x7 - x1) >> 14) + 128)
}

// idct8x8 applies the row pass to each of the 8 rows of coeffs, then the
// column pass to each of the 8 columns, writing the level-shifted,
// saturated 8x8 result into out (row-major, stride 8 starting at offset 0).
func idct8x8(coeffs *[64]int32, out *[64]byte) {
	for i := 0; i < 64; i += 8 {
		idctRow(coeffs[i : i+8])
	}
	for i := 0; i < 8; i++ {
		idctCol(coeffs[i:], out[:], i, 8)
	}
}
