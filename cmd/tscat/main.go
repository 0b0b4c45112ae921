package main

import (
	"github.com/gotvc/textstream/src/tscmd"
)

func main() {
	tscmd.Main()
}
