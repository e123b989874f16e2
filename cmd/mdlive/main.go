package main

import (
	"context"
	"fmt"
	"os"

	"pkt.systems/version"
)

func init() {
	version.SetDefaultModule("github.com/alnah/go-mdlive")
}

func main() {
	env := DefaultEnv()
	if err := run(context.Background(), os.Args[1:], env); err != nil {
		fmt.Fprintln(env.Stderr, formatError(err))
		os.Exit(exitCodeFor(err))
	}
}
