package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
)

// runREPL reads queries interactively until ctrl-c. Results print to
// stdout so they can be piped, everything else goes to stderr.
func runREPL() {
	printVersion()
	fmt.Fprint(os.Stderr, "Type help for the query forms, ctrl-c to quit.\n")
	rl, err := readline.New("> ")
	checkErr(err)
	for {
		src, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				break
			}
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if err := sess.run(src); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
