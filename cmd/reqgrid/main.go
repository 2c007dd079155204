package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/reqgrid/internal/cli"
)

// version is stamped at build time via -ldflags.
var version = "dev"

// main is the entrypoint for the reqgrid application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and
// error handling.
func run(outW, errW io.Writer, args []string) error {
	root := cli.New(outW, errW, version)
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetArgs(args)
	return root.Execute()
}
