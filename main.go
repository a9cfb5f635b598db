// Command sapling runs, formats, or opens an interactive REPL for
// Sapling scripts.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/sapling/cli"
	"github.com/ardnew/sapling/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		log.Make(os.Stderr).Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
