package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/tomz197/lines/internal/config"
	"github.com/tomz197/lines/internal/loop"
	"github.com/tomz197/lines/internal/physics"
	"github.com/tomz197/lines/internal/store"
	"golang.org/x/term"
)

func main() {
	// The terminal belongs to the animation; log to a file or nowhere.
	logger, closeLog, err := newLogger(config.GetEnv("LINES_LOG", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	dbPath := config.GetEnv("LINES_DB", config.DefaultDBPath)
	st, err := store.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open settings store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	seed := config.GetEnvInt64("LINES_SEED", 0)
	logger.Info("Starting", "db", dbPath, "seed", seed)

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader := bufio.NewReader(os.Stdin)
	err = loop.Run(ctx, reader, os.Stdout, loop.ClientOptions{
		Store:     st,
		KeyPrefix: config.StoragePrefix,
		Rand:      newRand(seed),
		Logger:    logger,
	})
	if err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "lines error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("Stopped")
}

// newLogger logs to path, or discards everything when path is empty.
func newLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "lines",
	})
	return logger, func() { _ = f.Close() }, nil
}

// newRand returns a generator for a fixed seed, or nil for a time-based one.
func newRand(seed int64) physics.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}
