// Command demo wires a synthetic multi-stage build against pkg/tree.Root
// and renders it with either line mode or the full-screen TUI.
//
// Usage:
//
//	go run ./cmd/demo
//	go run ./cmd/demo -tui
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tskit-go/dashline/pkg/ioctx"
	"github.com/tskit-go/dashline/pkg/line"
	"github.com/tskit-go/dashline/pkg/tree"
	"github.com/tskit-go/dashline/pkg/tui"
	"github.com/tskit-go/dashline/pkg/unit"
)

func main() {
	useTUI := flag.Bool("tui", false, "render with the full-screen TUI instead of line mode")
	columns := flag.Int("columns", 72, "line-mode column count for progress bars")
	fps := flag.Float64("fps", 10, "TUI frames per second")
	flag.Parse()

	ctx := ioctx.StdoutToContext(context.Background(), os.Stdout)
	ctx = ioctx.StderrToContext(ctx, os.Stderr)

	if err := run(ctx, *useTUI, *columns, *fps); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, useTUI bool, columns int, fps float64) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	root := tree.NewRoot(500)
	done := make(chan struct{})
	go func() {
		defer close(done)
		runWorkload(ctx, root)
	}()

	var err error
	if useTUI {
		err = runTUI(ctx, root, fps)
	} else {
		err = runLineMode(ctx, root, columns)
	}

	<-done
	return err
}

func runLineMode(ctx context.Context, root *tree.Root, columns int) error {
	out := ioctx.StdoutFromContext(ctx)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	state := &line.State{}
	opts := line.Options{
		ColumnCount:                  columns,
		KeepRunningIfProgressIsEmpty: false,
		OutputIsTerminal:             true,
		Colored:                      true,
		Timestamp:                    false,
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := line.DrawAll(out, root, true, state, opts); err != nil {
				if errors.Is(err, line.ErrEmptyProgress) {
					return nil
				}
				return err
			}
		}
	}
}

func runTUI(ctx context.Context, root *tree.Root, fps float64) error {
	term := tui.NewProcessTerminal()
	engine, err := tui.NewEngine(term, root, tui.Options{
		Title:                   "dashline demo",
		FramesPerSecond:         fps,
		RedrawOnlyOnStateChange: true,
		StopIfEmptyProgress:     true,
	})
	if err != nil {
		return err
	}

	runLoop, err := engine.Run(ctx, make(chan tui.Event))
	if err != nil {
		return err
	}
	runLoop()
	return nil
}

// runWorkload drives a handful of fake build stages against root until ctx
// is cancelled or every stage finishes, logging a message at each
// transition so both line mode's message log and the TUI's message panel
// have something to show.
func runWorkload(ctx context.Context, root *tree.Root) {
	stages := []struct {
		name  string
		total uint64
		unit  unit.DisplayValue
	}{
		{"fetch", 40, unit.NewHuman("objects")},
		{"compile", 120, unit.Duration{}},
		{"test", 80, unit.NewHuman("cases")},
		{"package", 30, unit.NewHuman("files")},
	}

	root.Add(tree.NewKey("build"), tree.Value{Name: "build"})
	root.Log(tree.Message{Time: time.Now(), Level: tree.Info, Origin: "build", Body: "starting build"})

	for _, stage := range stages {
		key := tree.NewKey("build", stage.name)
		total := stage.total
		root.Add(key, tree.Value{
			Name: stage.name,
			Progress: &tree.Progress{
				Step:   0,
				DoneAt: &total,
				Unit:   stage.unit,
				State:  tree.RunningState(),
			},
		})

		for step := uint64(0); step < stage.total; step++ {
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(20+rand.IntN(40)) * time.Millisecond):
			}
			root.Add(key, tree.Value{
				Name: stage.name,
				Progress: &tree.Progress{
					Step:   step + 1,
					DoneAt: &total,
					Unit:   stage.unit,
					State:  tree.RunningState(),
				},
			})
		}

		root.Remove(key)
		root.Log(tree.Message{Time: time.Now(), Level: tree.Success, Origin: stage.name, Body: "stage complete"})
	}

	root.Remove(tree.NewKey("build"))
	root.Log(tree.Message{Time: time.Now(), Level: tree.Success, Origin: "build", Body: "build finished"})
}
