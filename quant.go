package jpeg

// quantTableCount is the number of quantization table slots a baseline
// stream can reference (id 0..3).
const quantTableCount = 4

// quantTable holds one 64-entry table in zig-zag storage order, copied
// into owned storage at load time rather than borrowed from the input
// buffer — see DESIGN NOTES "Raw buffer ownership": jpeg_dec.c keeps a
// raw pointer into the input; this decoder copies so a table can outlive
// the original byte slice without aliasing it.
type quantTable [64]byte

// loadQuantTable parses the DQT segment at the reader's current position
// and installs each table it contains into tables[0..3]. Grounded on
// jpeg_dec.c's _get_qt_table.
func loadQuantTable(r *bitReader, tables *[quantTableCount]*quantTable) error {
	segStart := r.offset()
	length, err := r.nextWord()
	if err != nil {
		return err
	}
	end := segStart + int(length)

	for r.offset() < end {
		hdr, err := r.nextByte()
		if err != nil {
			return err
		}
		precision := hdr >> 4
		id := hdr & 0xf
		if precision != 0 {
			return fail(MalformedTable, r.offset(), "DQT: unsupported precision %d", precision)
		}
		if id >= quantTableCount {
			return fail(MalformedTable, r.offset(), "DQT: out-of-range table id %d", id)
		}

		var t quantTable
		for i := 0; i < 64; i++ {
			b, err := r.nextByte()
			if err != nil {
				return err
			}
			t[i] = b
		}
		tables[id] = &t
	}
	return nil
}
