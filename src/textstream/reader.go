package textstream

import (
	"bytes"
	"errors"
	"io"
	"syscall"

	"go.brendoncarroll.net/exp/maybe"
	"golang.org/x/exp/slices"
	"golang.org/x/text/encoding"
)

// Reader decodes a byte stream into UTF-8 text, pulling bounded chunks from
// the source as it goes. It exclusively owns the source and the decoder;
// dropping a Reader discards any buffered bytes and pending text.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	src  io.Reader
	dec  Decoder
	trap Trap

	chunk   []byte // bytes pulled from src, not yet consumed by dec
	rerr    error  // read error observed alongside returned bytes
	eof     bool
	pending maybe.Maybe[pending]
}

// pending is decoded text produced past a line boundary, replayed before
// any new bytes are decoded.
type pending struct {
	text     []byte
	complete bool
}

// New creates a Reader decoding r from enc to UTF-8.
// A nil trap is treated as Strict.
func New(r io.Reader, enc encoding.Encoding, trap Trap) *Reader {
	return NewWithDecoder(r, NewDecoder(enc), trap)
}

// NewWithDecoder creates a Reader using a caller-provided Decoder.
func NewWithDecoder(r io.Reader, dec Decoder, trap Trap) *Reader {
	if trap == nil {
		trap = Strict
	}
	return &Reader{
		src:   r,
		dec:   dec,
		trap:  trap,
		chunk: make([]byte, 0, DefaultChunkSize),
	}
}

// Source returns the underlying byte source. Reading from it directly while
// the Reader is in use will desync the decoder.
func (r *Reader) Source() io.Reader { return r.src }

// Decoder returns the underlying decoder. Feeding it directly while the
// Reader is in use will desync the chunk buffer.
func (r *Reader) Decoder() Decoder { return r.dec }

// step is the single incremental primitive ReadAll and ReadLine are built
// on. It appends zero or more decoded characters to dst and reports whether
// the decoder currently holds a complete sequence, or a dangling prefix of
// a multi-byte character awaiting more bytes.
func (r *Reader) step(dst []byte) ([]byte, bool, error) {
	if r.pending.Ok {
		p := r.pending.X
		r.pending = maybe.Maybe[pending]{}
		return append(dst, p.text...), p.complete, nil
	}
	if len(r.chunk) < DefaultChunkSize && !r.eof {
		if err := r.rerr; err != nil {
			r.rerr = nil
			return dst, false, err
		}
		// Exactly one bounded read; a short read just yields less
		// material this step.
		n, err := r.src.Read(r.chunk[len(r.chunk):DefaultChunkSize])
		r.chunk = r.chunk[:len(r.chunk)+n]
		switch {
		case err == io.EOF:
			r.eof = true
		case err != nil:
			if n == 0 {
				return dst, false, err
			}
			r.rerr = err
		case n == 0:
			// A zero-byte read signals end of input.
			r.eof = true
		}
	}
	dst, n, err := r.dec.Feed(dst, r.chunk)
	r.discard(n)
	if err != nil {
		var ce *CodecError
		if !errors.As(err, &ce) {
			return dst, false, err
		}
		bad := r.chunk[:ce.Upto-n]
		var ok bool
		if dst, ok = r.trap.Handle(r.dec, bad, dst); !ok {
			return dst, false, err
		}
		r.discard(len(bad))
	}
	complete := true
	if dst, err = r.dec.Finish(dst); err != nil {
		if errors.Is(err, ErrIncompleteSeq) {
			complete = false
		} else {
			var upto int
			var ce *CodecError
			if errors.As(err, &ce) {
				upto = ce.Upto
			}
			var ok bool
			if dst, ok = r.trap.Handle(r.dec, r.chunk[:upto], dst); !ok {
				return dst, false, err
			}
			r.discard(upto)
		}
	}
	return dst, complete, nil
}

// discard drops the first n buffered bytes.
func (r *Reader) discard(n int) {
	if n > 0 {
		r.chunk = r.chunk[:copy(r.chunk, r.chunk[n:])]
	}
}

// ReadAll appends all remaining decoded text to dst and returns the
// extended dst and the number of bytes appended. Interrupted reads are
// retried. If the source ends in the middle of a multi-byte character,
// ReadAll fails with ErrIncompleteSeq; text decoded before the failure is
// left in dst.
func (r *Reader) ReadAll(dst []byte) ([]byte, int, error) {
	start := len(dst)
	last := len(dst)
	for {
		out, complete, err := r.step(dst)
		dst = out
		switch {
		case err == nil:
		case errors.Is(err, syscall.EINTR):
			continue
		default:
			return dst, len(dst) - start, err
		}
		// A step can consume source bytes without producing text, when
		// a read ends inside a multi-byte character. Only treat "no
		// new text" as terminal once the source is exhausted.
		if len(dst) == last && r.eof {
			if complete {
				return dst, len(dst) - start, nil
			}
			return dst, len(dst) - start, ErrIncompleteSeq
		}
		last = len(dst)
	}
}

// ReadLine appends decoded text up to and including the next line feed to
// dst, or whatever remains at the end of the source when no terminator
// follows. It returns the extended dst and the number of bytes appended.
// Text decoded past the line feed is held back and replayed by the next
// call. On error, text decoded before the failure is left in dst.
func (r *Reader) ReadLine(dst []byte) ([]byte, int, error) {
	start := len(dst)
	last := len(dst)
	for {
		out, complete, err := r.step(dst)
		dst = out
		if i := bytes.IndexByte(dst[last:], '\n'); i >= 0 {
			end := last + i + 1
			if end < len(dst) {
				// The incomplete flag survives only when this
				// step itself ended mid-sequence.
				r.pending = maybe.Just(pending{
					text:     slices.Clone(dst[end:]),
					complete: complete || err != nil,
				})
				dst = dst[:end]
			}
			return dst, end - start, nil
		}
		switch {
		case err == nil:
		case errors.Is(err, syscall.EINTR):
			last = len(dst)
			continue
		case errors.Is(err, io.ErrUnexpectedEOF):
			return dst, len(dst) - start, nil
		default:
			return dst, len(dst) - start, err
		}
		if len(dst) == last && r.eof {
			return dst, len(dst) - start, nil
		}
		last = len(dst)
	}
}
