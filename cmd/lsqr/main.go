// SPDX-License-Identifier: MIT

// Command lsqr solves sparse least-squares problems described in TOML files.
//
//	lsqr solve --problem wunsch.toml --partitions 2 --report out.toml --plot conv.png
//	lsqr version
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
