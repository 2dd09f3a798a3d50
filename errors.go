package jpeg

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind discriminates the class of failure a Decode call can report, per
// the error taxonomy a caller needs to react sensibly to a bad stream.
type Kind int

const (
	// Truncated means the buffer ended before EOI outside the entropy stream.
	Truncated Kind = iota
	// UnknownMarker means a marker byte pair outside the supported set was seen.
	UnknownMarker
	// Unsupported means a recognized but unimplemented feature was requested
	// (progressive coding, sampling factors > 1, precision != 8, ...).
	Unsupported
	// MalformedTable means a DHT/DQT segment violates the table invariants.
	MalformedTable
	// Protocol means the entropy stream violated the bit-level protocol
	// (no Huffman code matched, an unexpected marker appeared mid-scan,
	// a restart marker was out of sequence or missing).
	Protocol
	// Resource means an allocation needed to hold frame state failed.
	Resource
)

func (k Kind) String() string {
	switch k {
	case Truncated:
		return "truncated input"
	case UnknownMarker:
		return "unknown marker"
	case Unsupported:
		return "unsupported feature"
	case MalformedTable:
		return "malformed table"
	case Protocol:
		return "decode protocol error"
	case Resource:
		return "resource failure"
	default:
		return "unknown error"
	}
}

// DecodeError reports the kind of failure and the byte offset at which it
// was detected, so a caller can log or recover without string sniffing.
type DecodeError struct {
	Kind   Kind
	Offset int
	err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("bjpeg: %s at offset %d: %v", e.Kind, e.Offset, e.err)
}

func (e *DecodeError) Unwrap() error { return e.err }

// fail builds a DecodeError of the given kind and offset around a new
// error formatted from format and args; wrapFail does the same around an
// existing err. Both follow the style of
// ausocean-av/codec/h264/h264dec's errors.Wrap use at every read site.
func fail(kind Kind, offset int, format string, args ...interface{}) error {
	return &DecodeError{Kind: kind, Offset: offset, err: errors.Errorf(format, args...)}
}

func wrapFail(kind Kind, offset int, err error, format string, args ...interface{}) error {
	return &DecodeError{Kind: kind, Offset: offset, err: errors.Wrapf(err, format, args...)}
}

var (
	// ErrNoHuffmanMatch is returned when no code at any length 1..16 matches.
	ErrNoHuffmanMatch = errors.New("no Huffman code matched within 16 bits")
	// ErrUnexpectedMarker is returned when the bit reader encounters a
	// marker other than FF00 stuffing or FFD9 EOI inside the entropy stream.
	ErrUnexpectedMarker = errors.New("unexpected marker in entropy stream")
	// ErrRestartOutOfSequence is returned when an RSTn marker's low 3 bits
	// don't match the expected sequence counter.
	ErrRestartOutOfSequence = errors.New("restart marker out of sequence")
)
