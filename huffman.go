package jpeg

// huffTableCount is the number of class/slot keys a baseline decoder
// needs: 2 classes (DC, AC) x 2 slots (0, 1) collapsed into one 0..3
// keyspace, as jpeg_dec.c's _get_ht_table does with (buf>>3)|(buf&0xf).
const huffTableCount = 4
const maxCodeLen = 16

// huffSymbol is one canonical (code, symbol) pair at a fixed bit length.
type huffSymbol struct {
	code   uint32
	symbol byte
}

// huffTable is a length-indexed array of canonical codes, decoded with an
// O(length) linear scan per length as spec.md §4.2 prescribes (baseline
// per-length counts are small enough that this beats building a tree).
type huffTable struct {
	bylen [maxCodeLen][]huffSymbol
	total int
}

// huffKey collapses Huffman class (0=DC,1=AC) and slot (0,1 for baseline)
// into the single key used throughout this decoder, per spec.md §4.2 and
// DESIGN NOTES' "Huffman table slot encoding". class and slot must
// already be validated by the caller (class<2, slot<2).
func huffKey(class, slot byte) int { return int(class)<<1 | int(slot) }

// loadHuffmanTable parses the DHT segment at the reader's current position
// and installs each table it contains into tables[0..3]. Grounded on
// jpeg_dec.c's _get_ht_table: 16 per-length counts, then that many symbols
// per length in length-then-transmission order, repeated until the
// segment's declared length is consumed.
func loadHuffmanTable(r *bitReader, tables *[huffTableCount]*huffTable) error {
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
		class := hdr >> 4
		slot := hdr & 0xf
		if class > 1 || slot > 1 {
			return fail(MalformedTable, r.offset(), "DHT: out-of-range class %d / slot %d", class, slot)
		}

		var counts [maxCodeLen]int
		total := 0
		for i := 0; i < maxCodeLen; i++ {
			c, err := r.nextByte()
			if err != nil {
				return err
			}
			counts[i] = int(c)
			total += int(c)
		}
		if total > 255 {
			return fail(MalformedTable, r.offset(), "DHT: symbol count %d exceeds 255", total)
		}

		ht := &huffTable{total: total}
		base := uint32(0)
		for length := 0; length < maxCodeLen; length++ {
			n := counts[length]
			if n > 0 {
				syms := make([]huffSymbol, n)
				for i := 0; i < n; i++ {
					s, err := r.nextByte()
					if err != nil {
						return err
					}
					if base+uint32(i) >= (uint32(1) << uint(length+1)) {
						return fail(MalformedTable, r.offset(), "DHT: code overflows length %d", length+1)
					}
					syms[i] = huffSymbol{code: base + uint32(i), symbol: s}
				}
				ht.bylen[length] = syms
			}
			base = (base + uint32(n)) << 1
		}

		tables[huffKey(class, slot)] = ht
	}
	return nil
}

// decodeSymbol decodes one variable-length code from r using ht, per
// spec.md §4.2: for each length 1..16, peek that many bits and linearly
// scan the symbol list for a match.
func decodeSymbol(r *bitReader, ht *huffTable) (byte, error) {
	for length := 1; length <= maxCodeLen; length++ {
		val, err := r.peek(length)
		if err != nil {
			return 0, err
		}
		for _, s := range ht.bylen[length-1] {
			if s.code == val {
				r.consume(length)
				return s.symbol, nil
			}
		}
	}
	return 0, wrapFail(Protocol, r.offset(), ErrNoHuffmanMatch, "Huffman decode at offset %d", r.offset())
}
