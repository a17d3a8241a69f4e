// Package loop runs the lines simulation and drives it from a terminal.
package loop

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/lines/internal/config"
	"github.com/tomz197/lines/internal/draw"
	"github.com/tomz197/lines/internal/input"
	"github.com/tomz197/lines/internal/physics"
	"github.com/tomz197/lines/internal/store"
)

// Client renders one Simulation to a terminal and feeds it key presses.
type Client struct {
	sim          *Simulation
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates frame output for chunked writes
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger

	running      bool
	lastInput    time.Time
	idleTimeout  bool
	isInactive   bool
	wasInactive  bool
	textCells    []textSpan // Text written over the canvas last frame
	messageColor string
	messageRGB   draw.RGB
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Store        store.Store  // Shared settings storage
	KeyPrefix    string       // Slot key prefix, e.g. per user
	Rand         physics.Rand // Random source; time-seeded when nil
	Logger       *log.Logger
	IdleTimeout  bool // Warn and then disconnect inactive users
}

// NewClient creates a client with a fresh simulation sized to the terminal.
func NewClient(r io.ByteReader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitTerminal(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)
	canvas := draw.NewCanvas(renderWidth, renderHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	width, height := viewport(canvas)
	sim := NewSimulation(Options{
		Width:     width,
		Height:    height,
		Store:     opts.Store,
		KeyPrefix: opts.KeyPrefix,
		Rand:      opts.Rand,
		Logger:    logger,
	})

	return &Client{
		sim:          sim,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		logger:       logger,
		running:      true,
		lastInput:    time.Now(),
		idleTimeout:  opts.IdleTimeout,
	}
}

// Simulation returns the simulation driven by the client.
func (c *Client) Simulation() *Simulation {
	return c.sim
}

// Run starts the client loop. Blocks until the user quits, the input ends,
// ctx is cancelled or writing to the terminal fails.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	for c.running {
		frameStart := time.Now()

		// Process input
		c.processInput()

		// Handle screen resize
		c.updateScreen()

		// Advance only while playing; paused frames just redraw text
		var frame Frame
		if c.sim.Playing() {
			frame = c.sim.Step()
		} else {
			frame = c.sim.Current()
		}

		// Draw frame
		if err := c.drawFrame(frame); err != nil {
			return err
		}

		// Frame timing
		wait := config.ClientTargetFrameTime - time.Since(frameStart)
		if wait <= 0 {
			wait = time.Millisecond
		}
		select {
		case <-ctx.Done():
			c.running = false
		case <-time.After(wait):
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// Run creates a client and runs it until it finishes.
func Run(ctx context.Context, r io.ByteReader, w io.Writer, opts ClientOptions) error {
	return NewClient(r, w, opts).Run(ctx)
}

// processInput reads pending keys and applies their actions.
func (c *Client) processInput() {
	in := input.ReadInput(c.inputStream)

	if len(in.Pressed) > 0 {
		c.lastInput = time.Now()
		c.isInactive = false
	} else if c.idleTimeout {
		idle := time.Since(c.lastInput).Seconds()
		if idle > config.InactivityDisconnectUser {
			c.logger.Info("Disconnecting inactive client", "idle", time.Since(c.lastInput).Round(time.Second))
			c.running = false
		} else if idle > config.InactivityWarnUser {
			c.isInactive = true
		}
	}

	for _, ev := range in.Events {
		action := input.ActionFor(ev)
		if action == input.ActionQuit {
			c.running = false
			return
		}
		c.sim.Dispatch(action)
	}

	if in.Closed {
		c.running = false
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitTerminal(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)

	if renderWidth == c.canvas.TerminalWidth() && renderHeight == c.canvas.TerminalHeight() &&
		offsetCol == c.canvas.OffsetCol() && offsetRow == c.canvas.OffsetRow() {
		return
	}

	c.chunkWriter.WriteString("\033[H\033[2J")
	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.canvas.ForceRedraw()
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
	c.textCells = c.textCells[:0]

	c.sim.Resize(viewport(c.canvas))
}

// viewport returns the simulation extent for a canvas: the last addressable
// sub-pixel on each axis.
func viewport(canvas *draw.Canvas) (width, height float64) {
	return float64(canvas.Width() - 1), float64(canvas.Height() - 1)
}
