package textstream

// Built-in recovery policies.
var (
	// Strict declines to recover; any invalid sequence fails the read.
	Strict Trap = TrapFunc(func(dec Decoder, bad, dst []byte) ([]byte, bool) {
		return dst, false
	})
	// Replace substitutes U+FFFD for each offending range.
	Replace Trap = TrapFunc(func(dec Decoder, bad, dst []byte) ([]byte, bool) {
		return append(dst, repl...), true
	})
	// Ignore drops offending ranges without a trace.
	Ignore Trap = TrapFunc(func(dec Decoder, bad, dst []byte) ([]byte, bool) {
		return dst, true
	})
)
