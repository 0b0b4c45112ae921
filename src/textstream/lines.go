package textstream

import (
	"context"

	"go.brendoncarroll.net/exp/streams"
)

// LineIterator produces the decoded lines of a stream one at a time, with
// line terminators stripped. It is forward-only and not restartable.
type LineIterator struct {
	r   *Reader
	buf []byte
}

var _ streams.Iterator[string] = &LineIterator{}

// Lines returns an iterator over the decoded lines of the stream.
// The iterator takes over the Reader; mixing Next with direct calls on the
// Reader will interleave their output.
func (r *Reader) Lines() *LineIterator {
	return &LineIterator{r: r}
}

// Next fills dst[0] with the next line, without its trailing "\n" or
// "\r\n", and returns how many lines it produced. It returns EOS when no
// text remains. An error does not close the iterator; a later call may
// attempt to read further.
func (it *LineIterator) Next(ctx context.Context, dst []string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	out, _, err := it.r.ReadLine(it.buf[:0])
	it.buf = out
	if err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, streams.EOS()
	}
	if out[len(out)-1] == '\n' {
		out = out[:len(out)-1]
		if len(out) > 0 && out[len(out)-1] == '\r' {
			out = out[:len(out)-1]
		}
	}
	dst[0] = string(out)
	return 1, nil
}
