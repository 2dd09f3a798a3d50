package jpeg

// component carries per-component state that persists across blocks
// within a scan: its frame-header identity and quant binding, the
// Huffman tables bound by SOS, the running DC predictor, and the scratch
// buffers a block decode writes into. Grounded on jpeg_dec.c's s_jcomp
// and the teacher's Component{Id,HSF,VSF,QS} shape (segment.go:365).
type component struct {
	id      byte
	hSamp   byte
	vSamp   byte
	quantID byte

	dcTableID byte
	acTableID byte

	dcPred int32

	coeffs [64]int32
	pixels [64]byte
}

// frame holds everything parsed from SOF0 plus the MCU geometry derived
// from it, and owns the large allocations (scratch row, output raster)
// per spec.md §3's Image descriptor lifecycle.
type frame struct {
	width  int
	height int

	components []component

	quant [quantTableCount]*quantTable
	huff  [huffTableCount]*huffTable

	mcuSizeX, mcuSizeY int
	hMCUs, vMCUs       int
	paddedWidth        int // hMCUs*mcuSizeX; rowScratch's stride, always a full MCU row wide

	restartInterval int
	restartCountdown int
	nextRestart      int

	rowScratch []byte
	pixels     []byte
}

func componentIndex(components []component, id byte) int {
	for i := range components {
		if components[i].id == id {
			return i
		}
	}
	return -1
}

// parseSOF0 reads the frame header at the reader's current position and
// populates f. Grounded on jpeg_dec.c's _decode_frame: precision must be
// 8, sampling factors must all be 1x1 (non-goal: chroma subsampling), and
// component count must be 1 or 3.
func parseSOF0(r *bitReader, f *frame) error {
	_, err := r.nextWord() // segment length; SOF0 has no variable-length tail to bound
	if err != nil {
		return err
	}
	precision, err := r.nextByte()
	if err != nil {
		return err
	}
	if precision != 8 {
		return fail(Unsupported, r.offset(), "SOF0: unsupported sample precision %d", precision)
	}
	height, err := r.nextWord()
	if err != nil {
		return err
	}
	width, err := r.nextWord()
	if err != nil {
		return err
	}
	count, err := r.nextByte()
	if err != nil {
		return err
	}
	if count != 1 && count != 3 {
		return fail(Unsupported, r.offset(), "SOF0: unsupported component count %d", count)
	}

	f.width = int(width)
	f.height = int(height)
	f.components = make([]component, count)

	for i := 0; i < int(count); i++ {
		id, err := r.nextByte()
		if err != nil {
			return err
		}
		samp, err := r.nextByte()
		if err != nil {
			return err
		}
		qid, err := r.nextByte()
		if err != nil {
			return err
		}
		h, v := samp>>4, samp&0xf
		if h != 1 || v != 1 {
			return fail(Unsupported, r.offset(), "SOF0: unsupported sampling factor %d:%d for component %d", h, v, id)
		}
		if qid >= quantTableCount {
			return fail(MalformedTable, r.offset(), "SOF0: out-of-range quant table id %d", qid)
		}
		f.components[i] = component{id: id, hSamp: h, vSamp: v, quantID: qid}
	}

	f.mcuSizeX, f.mcuSizeY = 8, 8
	f.hMCUs = (f.width + f.mcuSizeX - 1) / f.mcuSizeX
	f.vMCUs = (f.height + f.mcuSizeY - 1) / f.mcuSizeY
	f.paddedWidth = f.hMCUs * f.mcuSizeX

	// rowScratch is strided by paddedWidth, not width: jpeg_dec.c sizes its
	// scan_out buffer to the unpadded width and relies on the last MCU
	// column's off-image pixels spilling into the next scanline's leading
	// bytes (harmless mid-row, but it overruns the buffer entirely on the
	// final row of a width not a multiple of 8). Padding to a whole number
	// of MCUs avoids that overrun; copyScanRow below trims back to the
	// true width when it lands the row in the output raster.
	f.rowScratch = make([]byte, f.paddedWidth*f.mcuSizeY*int(count))
	f.pixels = make([]byte, f.width*f.height*int(count))

	return nil
}

// parseDRI reads a DRI segment and installs the restart interval.
// Grounded on jpeg_dec.c's _decode_dri.
func parseDRI(r *bitReader, f *frame) error {
	if _, err := r.nextWord(); err != nil { // segment length, always 4
		return err
	}
	ri, err := r.nextWord()
	if err != nil {
		return err
	}
	f.restartInterval = int(ri)
	f.restartCountdown = int(ri)
	f.nextRestart = 0
	return nil
}
