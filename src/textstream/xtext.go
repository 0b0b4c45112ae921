package textstream

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/exp/slices"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// repl is the UTF-8 encoding of U+FFFD, which x/text decoders substitute
// for bytes they cannot decode.
var repl = []byte("�")

type transformDecoder struct {
	enc        encoding.Encoding
	tr         transform.Transformer
	incomplete bool
}

// NewDecoder adapts an x/text Encoding to the Decoder interface.
//
// x/text decoders replace invalid input with U+FFFD instead of reporting
// it, so the adapter treats a freshly emitted replacement rune as an
// invalid sequence and recovers the offending byte range itself. This
// requires that the source encoding cannot represent U+FFFD, which holds
// for every legacy charset; a UTF-8 source containing a literal U+FFFD is
// indistinguishable from damage and is reported as invalid.
//
// The encoding must not carry shift state between characters, because the
// range recovery maps output back to source offsets with fresh
// transformers. Encodings with escape-driven modes, like ISO-2022-JP,
// would decode text after a recovered invalid byte in the wrong mode;
// Lookup refuses to hand them out.
func NewDecoder(enc encoding.Encoding) Decoder {
	return &transformDecoder{enc: enc, tr: enc.NewDecoder()}
}

func (d *transformDecoder) Feed(dst, src []byte) ([]byte, int, error) {
	d.incomplete = false
	if len(src) == 0 {
		return dst, 0, nil
	}
	start := len(dst)
	dst, nSrc, err := transformAppend(d.tr, dst, src)
	if i := bytes.Index(dst[start:], repl); i >= 0 {
		// The transformer hit bytes it could not decode. Text before
		// the replacement maps to a source prefix; one more rune of
		// output consumes exactly the offending sequence.
		dst = dst[:start+i]
		from := d.measure(src, i)
		upto := d.measure(src, i+len(repl))
		// The reader will re-feed everything past from.
		d.tr.Reset()
		return dst, from, &CodecError{Msg: "invalid sequence", Upto: upto}
	}
	if err != nil && err != transform.ErrShortSrc {
		return dst, nSrc, err
	}
	d.incomplete = err == transform.ErrShortSrc
	return dst, nSrc, nil
}

func (d *transformDecoder) Finish(dst []byte) ([]byte, error) {
	if d.incomplete {
		return dst, ErrIncompleteSeq
	}
	return dst, nil
}

// measure returns how many bytes of src a fresh transformer consumes while
// producing exactly outLen bytes of output.
func (d *transformDecoder) measure(src []byte, outLen int) int {
	tr := d.enc.NewDecoder()
	buf := make([]byte, outLen)
	_, nSrc, _ := tr.Transform(buf, src, false)
	return nSrc
}

// transformAppend runs tr over src, appending output to dst and growing it
// as needed. The returned error is nil or transform.ErrShortSrc unless the
// transformer failed outright.
func transformAppend(tr transform.Transformer, dst, src []byte) ([]byte, int, error) {
	var total int
	for {
		if cap(dst)-len(dst) < utf8.UTFMax {
			dst = slices.Grow(dst, max(len(src), 64))
		}
		nDst, nSrc, err := tr.Transform(dst[len(dst):cap(dst)], src[total:], false)
		dst = dst[:len(dst)+nDst]
		total += nSrc
		if err == transform.ErrShortDst {
			continue
		}
		return dst, total, err
	}
}
