package jpeg

import "testing"

// buildDHTSegment constructs the byte payload of a single DHT table
// (segment length, class/slot byte, 16 counts, symbols) for direct
// feeding to loadHuffmanTable via a bitReader.
func buildDHTSegment(class, slot byte, counts [16]byte, symbols []byte) []byte {
	body := []byte{class<<4 | slot}
	body = append(body, counts[:]...)
	body = append(body, symbols...)
	segLen := uint16(2 + len(body))
	out := []byte{byte(segLen >> 8), byte(segLen)}
	return append(out, body...)
}

func TestLoadHuffmanTableCanonicalCodes(t *testing.T) {
	// Two length-2 codes and one length-1 code, a standard small canonical
	// table: symbol 'a' at code "0", symbols 'b','c' at codes "10","11".
	var counts [16]byte
	counts[0] = 1 // one code of length 1
	counts[1] = 2 // two codes of length 2
	data := buildDHTSegment(0, 0, counts, []byte{'a', 'b', 'c'})

	r := newBitReader(data)
	var tables [huffTableCount]*huffTable
	if err := loadHuffmanTable(r, &tables); err != nil {
		t.Fatalf("loadHuffmanTable: %v", err)
	}
	ht := tables[huffKey(0, 0)]
	if ht == nil {
		t.Fatal("table for class 0 slot 0 not installed")
	}
	if ht.total != 3 {
		t.Fatalf("total = %d, want 3", ht.total)
	}

	cases := []struct {
		length int
		code   uint32
		symbol byte
	}{
		{1, 0, 'a'},
		{2, 2, 'b'},
		{2, 3, 'c'},
	}
	for _, c := range cases {
		found := false
		for _, s := range ht.bylen[c.length-1] {
			if s.code == c.code {
				found = true
				if s.symbol != c.symbol {
					t.Errorf("length %d code %d: symbol %c, want %c", c.length, c.code, s.symbol, c.symbol)
				}
			}
		}
		if !found {
			t.Errorf("no entry for length %d code %d", c.length, c.code)
		}
	}
}

func TestDecodeSymbolMatchesEncodedStream(t *testing.T) {
	var counts [16]byte
	counts[0] = 1
	counts[1] = 2
	data := buildDHTSegment(0, 0, counts, []byte{'a', 'b', 'c'})

	r := newBitReader(data)
	var tables [huffTableCount]*huffTable
	if err := loadHuffmanTable(r, &tables); err != nil {
		t.Fatalf("loadHuffmanTable: %v", err)
	}
	ht := tables[huffKey(0, 0)]

	// Encode "b" (code "10") then "a" (code "0") then "c" (code "11"),
	// MSB-first: bits 1,0,0,1,1 padded to a byte with trailing 1s.
	var w bitWriter
	w.writeBits(0b10, 2)
	w.writeBits(0, 1)
	w.writeBits(0b11, 2)
	w.flush()

	stream := newBitReader(w.out)
	for _, want := range []byte{'b', 'a', 'c'} {
		got, err := decodeSymbol(stream, ht)
		if err != nil {
			t.Fatalf("decodeSymbol: %v", err)
		}
		if got != want {
			t.Fatalf("decoded %c, want %c", got, want)
		}
	}
}

func TestLoadHuffmanTableRejectsOutOfRangeSlot(t *testing.T) {
	var counts [16]byte
	counts[0] = 1
	data := buildDHTSegment(0, 2, counts, []byte{'a'}) // slot 2 is out of range
	r := newBitReader(data)
	var tables [huffTableCount]*huffTable
	if err := loadHuffmanTable(r, &tables); err == nil {
		t.Fatal("expected an error for out-of-range Huffman slot")
	}
}

func TestLoadQuantTable(t *testing.T) {
	var values [64]byte
	for i := range values {
		values[i] = byte(i + 1)
	}
	body := append([]byte{0x01}, values[:]...) // precision 0, id 1
	segLen := uint16(2 + len(body))
	data := append([]byte{byte(segLen >> 8), byte(segLen)}, body...)

	r := newBitReader(data)
	var tables [quantTableCount]*quantTable
	if err := loadQuantTable(r, &tables); err != nil {
		t.Fatalf("loadQuantTable: %v", err)
	}
	if tables[1] == nil {
		t.Fatal("table id 1 not installed")
	}
	if tables[0] != nil {
		t.Fatal("table id 0 should not be installed")
	}
	for i, v := range tables[1] {
		if v != byte(i+1) {
			t.Errorf("tables[1][%d] = %d, want %d", i, v, i+1)
		}
	}
}

func TestLoadQuantTableRejectsBadPrecision(t *testing.T) {
	var values [64]byte
	body := append([]byte{0x10}, values[:]...) // precision 1, unsupported
	segLen := uint16(2 + len(body))
	data := append([]byte{byte(segLen >> 8), byte(segLen)}, body...)

	r := newBitReader(data)
	var tables [quantTableCount]*quantTable
	if err := loadQuantTable(r, &tables); err == nil {
		t.Fatal("expected an error for 16-bit quant table precision")
	}
}
