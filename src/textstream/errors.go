package textstream

// CodecError is a decode failure reported by a Decoder.
// I/O errors from the byte source are passed through untouched, so callers
// can tell the two kinds apart with errors.As.
type CodecError struct {
	// Msg describes the failure.
	Msg string
	// Upto is the exclusive end of the offending byte range, relative to
	// the slice passed to Decoder.Feed. Zero when no range applies.
	Upto int
}

func (e *CodecError) Error() string { return e.Msg }

func (e *CodecError) Is(target error) bool {
	t, ok := target.(*CodecError)
	return ok && t.Msg == e.Msg
}

// ErrIncompleteSeq is returned by Decoder.Finish when the remaining bytes
// are a valid but truncated prefix of a multi-byte character, and by
// (*Reader).ReadAll when the source ends in that state.
var ErrIncompleteSeq = &CodecError{Msg: "incomplete sequence"}
