// Package textstream reads byte streams in arbitrary text encodings as UTF-8.
// It decodes incrementally in bounded chunks, never splits a multi-byte
// character across separately returned pieces of output, and can produce
// either the whole stream or one line at a time.
package textstream

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/japanese"
)

// DefaultChunkSize is the target fill level for a Reader's chunk buffer.
// It is a soft target; the buffer holds fewer bytes near the end of the
// source.
const DefaultChunkSize = 2048

// Decoder incrementally converts bytes in some source encoding to UTF-8.
// Decoder state persists across calls, so a multi-byte character can span
// two Feed calls.
type Decoder interface {
	// Feed decodes a leading portion of src, appending UTF-8 text to dst.
	// It returns the extended dst and the number of leading bytes of src it
	// fully consumed. If src contains a byte sequence which is invalid in
	// the source encoding, Feed stops before it and returns a *CodecError
	// whose Upto field is the exclusive end of the offending range; the
	// range begins at the consumed count.
	Feed(dst, src []byte) ([]byte, int, error)
	// Finish reports on the state left behind by the last Feed.
	// ErrIncompleteSeq means the unconsumed tail is a valid but truncated
	// prefix of a multi-byte character; more bytes may yet complete it.
	Finish(dst []byte) ([]byte, error)
}

// Trap decides what to do about byte sequences that cannot be decoded.
type Trap interface {
	// Handle is called with the offending bytes. It may append substitute
	// text to dst. Returning false means the caller must fail.
	Handle(dec Decoder, bad, dst []byte) ([]byte, bool)
}

// TrapFunc adapts a function to the Trap interface.
type TrapFunc func(dec Decoder, bad, dst []byte) ([]byte, bool)

func (fn TrapFunc) Handle(dec Decoder, bad, dst []byte) ([]byte, bool) {
	return fn(dec, bad, dst)
}

// Lookup resolves a WHATWG encoding label, like "sjis" or "utf-8", to an
// Encoding accepted by New. Labels for encodings that carry shift state
// between characters are rejected, since NewDecoder cannot recover them
// after an invalid sequence.
func Lookup(label string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, err
	}
	if enc == japanese.ISO2022JP {
		return nil, fmt.Errorf("%s: stateful encodings are not supported", label)
	}
	return enc, nil
}
