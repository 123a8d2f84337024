// Command qasmc is the OpenQASM 2.0 front end driver.
//
// Usage:
//
//	qasmc [flags] <command> <file>...
//
// Commands print the token stream, the expanded source, the syntax tree
// or the canonical form of a program, or check it for semantic errors.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	c := newRootCommand(newGlobalState())
	c.cmd.SetContext(ctx)
	code := c.execute(os.Args[1:])
	cancel()
	os.Exit(code)
}
