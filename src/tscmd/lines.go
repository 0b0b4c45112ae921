package tscmd

import (
	"bufio"
	"fmt"

	"github.com/fatih/color"
	"go.brendoncarroll.net/exp/streams"
	"go.brendoncarroll.net/star"
	"go.brendoncarroll.net/stdctx/logctx"
)

var linesCmd = star.Command{
	Metadata: star.Metadata{
		Short: "prints numbered, decoded lines",
	},
	Flags: map[string]star.Flag{
		"encoding": encodingParam,
		"trap":     trapParam,
	},
	Pos: []star.Positional{pathParam},
	F: func(c star.Context) error {
		ctx := c.Context
		r, closer, err := openReader(c)
		if err != nil {
			return err
		}
		defer closer()
		it := r.Lines()
		bufw := bufio.NewWriter(c.StdOut)
		var line string
		for i := 1; ; i++ {
			err := streams.NextUnit(ctx, it, &line)
			if streams.IsEOS(err) {
				break
			}
			if err != nil {
				logctx.Warnf(ctx, "stopping at line %d: %v", i, err)
				fmt.Fprintf(bufw, "%s  %s\n", color.YellowString("%6d", i), color.RedString("error: %v", err))
				bufw.Flush()
				return fmt.Errorf("line %d: %w", i, err)
			}
			fmt.Fprintf(bufw, "%s  %s\n", color.YellowString("%6d", i), line)
		}
		return bufw.Flush()
	},
}
