package jpeg

// parseScan reads the SOS header, binds each scan component to its DC/AC
// Huffman tables, then drives the MCU loop to completion, writing decoded
// rows into f.pixels. Grounded on jpeg_dec.c's _decode_scan; the
// AC-table-id nibble bug noted in DESIGN NOTES ("(buf & 1) | 2") is NOT
// reproduced here — the full low nibble is used, per spec.md's explicit
// instruction to follow ITU T.81 instead of the source's idiosyncrasy.
func parseScan(r *bitReader, f *frame, log Logger) error {
	if _, err := r.nextWord(); err != nil { // segment length
		return err
	}
	nComp, err := r.nextByte()
	if err != nil {
		return err
	}
	log.Log(LevelCoeff, "SOS: %d scan components", nComp)

	for i := 0; i < int(nComp); i++ {
		id, err := r.nextByte()
		if err != nil {
			return err
		}
		sel, err := r.nextByte()
		if err != nil {
			return err
		}
		idx := componentIndex(f.components, id)
		if idx < 0 {
			return fail(MalformedTable, r.offset(), "SOS: unknown component id %d", id)
		}
		dc, ac := sel>>4, sel&0xf
		if dc > 1 || ac > 1 {
			return fail(MalformedTable, r.offset(), "SOS: out-of-range Huffman slot dc=%d ac=%d for component %d", dc, ac, id)
		}
		f.components[idx].dcTableID = dc
		f.components[idx].acTableID = ac
		log.Log(LevelCoeff, "  comp id %d: dc=%d ac=%d", id, dc, ac)
	}

	if _, err := r.nextByte(); err != nil { // start of spectral selection (Ss); baseline requires 0, unchecked
		return err
	}
	se, err := r.nextByte()
	if err != nil {
		return err
	}
	if _, err := r.nextByte(); err != nil { // successive approximation (Ah/Al); baseline requires 0, unchecked
		return err
	}
	if se != 63 {
		return fail(Unsupported, r.offset(), "SOS: unsupported spectral selection end %d (progressive scans are out of scope)", se)
	}

	return driveScan(r, f, log)
}

// driveScan decodes every MCU in raster order, handling restart markers
// at MCU granularity exactly as spec.md §4.6 requires: the bit reader
// never sees an RSTn because the scan driver always clears the bit
// buffer and reads the marker word directly from the byte cursor first.
func driveScan(r *bitReader, f *frame, log Logger) error {
rows:
	for mcuY := 0; mcuY < f.vMCUs; mcuY++ {
		for mcuX := 0; mcuX < f.hMCUs; mcuX++ {
			for i := range f.components {
				comp := &f.components[i]
				quant := f.quant[comp.quantID]
				if quant == nil {
					return fail(MalformedTable, r.offset(), "missing quant table %d", comp.quantID)
				}
				dcTable := f.huff[huffKey(0, comp.dcTableID)]
				acTable := f.huff[huffKey(1, comp.acTableID)]
				if dcTable == nil || acTable == nil {
					return fail(MalformedTable, r.offset(), "missing Huffman table for component %d", comp.id)
				}
				if err := decodeBlock(r, comp, quant, dcTable, acTable, log); err != nil {
					return err
				}
			}

			switch len(f.components) {
			case 1:
				writeGrayscaleMCU(f, &f.components[0], mcuX)
			case 3:
				writeColorMCU(f, &f.components[0], &f.components[1], &f.components[2], mcuX)
			}

			if f.restartInterval != 0 {
				f.restartCountdown--
				if f.restartCountdown == 0 {
					done, err := handleRestart(r, f, log)
					if err != nil {
						return err
					}
					if done {
						copyScanRow(f, mcuY)
						break rows
					}
				}
			}
		}

		copyScanRow(f, mcuY)
	}
	return nil
}

// copyScanRow trims rowScratch's MCU-padded rows down to the image's true
// width and copies them into the output raster, one real scanline at a
// time, stopping at the image's true height — spec.md §8 invariant 10:
// the raster is exactly width*height*channels, with no padding emitted.
func copyScanRow(f *frame, mcuY int) {
	channels := len(f.components)
	srcStride := f.paddedWidth * channels
	dstStride := f.width * channels

	for r := 0; r < f.mcuSizeY; r++ {
		y := mcuY*f.mcuSizeY + r
		if y >= f.height {
			break
		}
		srcOff := r * srcStride
		dstOff := y * dstStride
		copy(f.pixels[dstOff:dstOff+dstStride], f.rowScratch[srcOff:srcOff+dstStride])
	}
}

// handleRestart clears the bit buffer and consumes the RSTn (or EOI)
// marker word following a completed restart interval. It returns true
// when EOI was found mid-scan, in which case the partially filled MCU
// row already written to rowScratch is still copied out by the caller —
// the Open Question DESIGN.md resolves in favor of jpeg_dec.c's
// goto end_scan_line behavior.
func handleRestart(r *bitReader, f *frame, log Logger) (eoiSeen bool, err error) {
	r.clear()
	marker, err := r.nextWord()
	if err != nil {
		return false, err
	}
	if marker == 0xffd9 { // EOI
		r.skipBytes(-2)
		return true, nil
	}
	if marker&0xfff8 != 0xffd0 || int(marker&0x7) != f.nextRestart {
		return false, wrapFail(Protocol, r.offset(), ErrRestartOutOfSequence,
			"expected RST%d, got marker 0x%04x", f.nextRestart, marker)
	}
	log.Log(LevelBit, "restart marker 0x%04x", marker)
	f.nextRestart = (f.nextRestart + 1) % 8
	f.restartCountdown = f.restartInterval
	for i := range f.components {
		f.components[i].dcPred = 0
	}
	return false, nil
}
