// Package jpeg decodes a baseline sequential JPEG (SOF0) bitstream into
// an uncompressed 8-bit grayscale or 24-bit RGB raster. It supports one
// or three components (grayscale or 1x1-sampled YCbCr) and optional
// restart markers. Progressive, arithmetic, and hierarchical coding,
// 12-bit samples, chroma subsampling, CMYK, and ICC/EXIF metadata are
// out of scope.
package jpeg

const (
	markerSOI  = 0xffd8
	markerEOI  = 0xffd9
	markerDQT  = 0xffdb
	markerDHT  = 0xffc4
	markerSOF0 = 0xffc0
	markerSOF2 = 0xffc2
	markerDRI  = 0xffdd
	markerSOS  = 0xffda
	markerCOM  = 0xfffe
	markerAPP0 = 0xffe0
	markerAPPf = 0xffef
)

// Image is the decode result: a contiguous row-major raster of
// Width*Height*Channels bytes, Channels being 1 (grayscale) or 3 (RGB).
type Image struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// Options configures a Decode call. A nil Logger decodes silently.
type Options struct {
	Logger Logger
}

// Decode parses data as a baseline JPEG bitstream and returns the decoded
// raster. It never reads past the first EOI marker, per spec.md §8
// invariant 6: the byte after EOI is never accessed. Grounded on
// jpeg_dec.c's _decode/main and the teacher's Parse (jpeg.go:638), with
// Control generalized into Options and global verbosity into a Logger.
func Decode(data []byte, opts *Options) (*Image, error) {
	log := Logger(nopLogger{})
	if opts != nil && opts.Logger != nil {
		log = opts.Logger
	}

	if len(data) < 2 || data[0] != 0xff || data[1] != 0xd8 {
		return nil, fail(Truncated, 0, "missing SOI marker")
	}

	r := newBitReader(data)
	f := &frame{}
	var haveFrame bool

	for !r.isEOF() {
		markerOff := r.offset()
		marker, err := r.nextWord()
		if err != nil {
			return nil, err
		}

		switch marker {
		case markerSOI:
			log.Log(LevelMarker, "SOI")

		case markerEOI:
			log.Log(LevelMarker, "EOI")
			return finish(f, haveFrame, markerOff)

		case markerDQT:
			log.Log(LevelMarker, "DQT")
			if err := loadQuantTable(r, &f.quant); err != nil {
				return nil, err
			}

		case markerDHT:
			log.Log(LevelMarker, "DHT")
			if err := loadHuffmanTable(r, &f.huff); err != nil {
				return nil, err
			}

		case markerSOF0:
			log.Log(LevelMarker, "SOF0")
			if err := parseSOF0(r, f); err != nil {
				return nil, err
			}
			haveFrame = true

		case markerSOF2:
			return nil, fail(Unsupported, markerOff, "progressive coding (SOF2) is not supported")

		case markerDRI:
			log.Log(LevelMarker, "DRI")
			if err := parseDRI(r, f); err != nil {
				return nil, err
			}

		case markerSOS:
			log.Log(LevelMarker, "SOS")
			if !haveFrame {
				return nil, fail(Protocol, markerOff, "SOS before SOF0")
			}
			if err := parseScan(r, f, log); err != nil {
				return nil, err
			}

		default:
			if marker >= markerAPP0 && marker <= markerAPPf {
				n, err := skipSegment(r)
				if err != nil {
					return nil, err
				}
				log.Log(LevelMarker, "APPn segment length %d", n)
			} else if marker == markerCOM {
				n, err := skipSegment(r)
				if err != nil {
					return nil, err
				}
				log.Log(LevelMarker, "COM segment length %d", n)
			} else {
				return nil, fail(UnknownMarker, markerOff, "unknown marker 0x%04x", marker)
			}
		}
	}

	return finish(f, haveFrame, r.offset())
}

func finish(f *frame, haveFrame bool, offset int) (*Image, error) {
	if !haveFrame {
		return nil, fail(Truncated, offset, "stream ended before a frame was decoded")
	}
	return &Image{
		Width:    f.width,
		Height:   f.height,
		Channels: len(f.components),
		Pix:      f.pixels,
	}, nil
}

// skipSegment reads a length-prefixed segment's two-byte length and skips
// its payload, for markers whose content this decoder does not interpret
// (APPn, COM). Grounded on jpeg_dec.c's _skip_segment.
func skipSegment(r *bitReader) (int, error) {
	length, err := r.nextWord()
	if err != nil {
		return 0, err
	}
	r.skipBytes(int(length) - 2)
	return int(length), nil
}
