package tscmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"go.brendoncarroll.net/star"

	"github.com/gotvc/textstream/src/textstream"
)

var catCmd = star.Command{
	Metadata: star.Metadata{
		Short: "decodes a file to UTF-8 on stdout",
	},
	Flags: map[string]star.Flag{
		"encoding": encodingParam,
		"trap":     trapParam,
	},
	Pos: []star.Positional{pathParam},
	F: func(c star.Context) error {
		r, closer, err := openReader(c)
		if err != nil {
			return err
		}
		defer closer()
		out, _, err := r.ReadAll(nil)
		if err != nil {
			return err
		}
		bufw := bufio.NewWriter(c.StdOut)
		if _, err := bufw.Write(out); err != nil {
			return err
		}
		return bufw.Flush()
	},
}

var encodingParam = star.Optional[string]{
	ID:       "encoding",
	Parse:    star.ParseString,
	ShortDoc: "WHATWG label for the source encoding, default utf-8",
}

var trapParam = star.Optional[string]{
	ID:       "trap",
	Parse:    star.ParseString,
	ShortDoc: "what to do about undecodable bytes: strict, replace, or ignore",
}

var pathParam = star.Optional[string]{
	ID:       "path",
	Parse:    star.ParseString,
	ShortDoc: "file to read, stdin when omitted",
}

func openReader(c star.Context) (*textstream.Reader, func() error, error) {
	label, ok := encodingParam.LoadOpt(c)
	if !ok {
		label = "utf-8"
	}
	enc, err := textstream.Lookup(label)
	if err != nil {
		return nil, nil, err
	}
	trap := textstream.Strict
	if name, ok := trapParam.LoadOpt(c); ok {
		switch name {
		case "strict":
			trap = textstream.Strict
		case "replace":
			trap = textstream.Replace
		case "ignore":
			trap = textstream.Ignore
		default:
			return nil, nil, fmt.Errorf("unknown trap %q", name)
		}
	}
	var src io.Reader = c.StdIn
	closer := func() error { return nil }
	if p, ok := pathParam.LoadOpt(c); ok {
		f, err := os.Open(p)
		if err != nil {
			return nil, nil, err
		}
		src = f
		closer = f.Close
	}
	return textstream.New(src, enc, trap), closer, nil
}
