package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	pagecarvegin "github.com/mabho/pagecarve/gin"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	logger := slog.New(slog.NewTextHandler(deps.Stderr, nil))
	srv := pagecarvegin.NewServer(pagecarvegin.Config{
		Addr:  c.Addr,
		Debug: c.Debug,
	}, deps.Carver, logger)

	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(deps.Stdout, "Listening on %s\n", c.Addr)

	if err := srv.Run(ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	return nil
}
