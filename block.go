package jpeg

// izigzag maps zig-zag scan position 0..63 to natural (row-major)
// position 0..63, reproduced exactly from jpeg_dec.c's _IZZ table.
var izigzag = [64]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

// decodeBlock decodes one 8x8 block for comp: the differential DC value,
// up to 63 AC coefficients, dequantizes via the zig-zag index, runs the
// IDCT, and writes the result into comp.pixels. Grounded on jpeg_dec.c's
// _decode_block.
func decodeBlock(r *bitReader, comp *component, quant *quantTable, dcTable, acTable *huffTable, log Logger) error {
	for i := range comp.coeffs {
		comp.coeffs[i] = 0
	}

	// DC: one Huffman symbol gives the magnitude size; read that many raw
	// bits and sign-extend to get the difference from the running predictor.
	size, err := decodeSymbol(r, dcTable)
	if err != nil {
		return err
	}
	diff, err := r.readSigned(int(size))
	if err != nil {
		return err
	}
	comp.dcPred += diff
	comp.coeffs[0] = comp.dcPred * int32(quant[0])
	log.Log(LevelBit, "DC comp %d: diff=%d pred=%d", comp.id, diff, comp.dcPred)

	// AC: run-length/size-coded until EOB (0x00) or 64 coefficients are
	// filled. A size of 0 (true for both EOB and ZRL=0xF0) reads no extra
	// bits and contributes value 0; ZRL's run of 15 plus the loop's own
	// advance accounts for its usual "skip 16" description.
	for k := 1; k < 64; {
		rs, err := decodeSymbol(r, acTable)
		if err != nil {
			return err
		}
		if rs == 0x00 { // EOB
			break
		}
		run := int(rs >> 4)
		size := int(rs & 0xf)

		k += run
		if k >= 64 {
			return fail(Protocol, r.offset(), "AC run overruns block (k=%d)", k)
		}
		val, err := r.readSigned(size)
		if err != nil {
			return err
		}
		pos := izigzag[k]
		comp.coeffs[pos] = val * int32(quant[k])
		k++
	}

	idct8x8(&comp.coeffs, &comp.pixels)
	return nil
}
