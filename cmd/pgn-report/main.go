// pgn-report parses chess games in PGN format and reports their tags, moves and result.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
