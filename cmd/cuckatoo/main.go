// Cuckatoo: reference CPU solver for the Cuckatoo proof-of-work
// Copyright (C) 2026  The Cuckatoo Solver Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"cuckatoo/internal/cli/ui"
	"cuckatoo/internal/config"
	"cuckatoo/internal/timing"
	"cuckatoo/pkg/cuckatoo/core"
	"cuckatoo/pkg/cuckatoo/factory"
)

func main() {
	cfg := config.Load()

	var (
		edgeBits  = flag.Uint("edge-bits", uint(cfg.EdgeBits), "graph size exponent (10-32)")
		mode      = flag.String("mode", factory.DefaultMode, "trimming mode (lean, mean, slean)")
		rounds    = flag.Uint("trimming-rounds", uint(cfg.TrimmingRounds), "maximum trimming rounds")
		nonce     = flag.Uint64("nonce", cfg.Nonce, "starting nonce")
		attempts  = flag.Int("attempts", 1, "number of consecutive nonces to try")
		headerHex = flag.String("header-hex", cfg.HeaderHex, "job header as hex (default: all-zero 238 bytes)")
		tuning    = flag.Bool("tuning", false, "run offline benchmark attempts and report timing statistics")
		monitor   = flag.Bool("monitor", false, "show the live solve monitor")
		debug     = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	header, err := buildHeader(*headerHex)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	job := &core.Job{
		Header:         header,
		Nonce:          *nonce,
		EdgeBits:       uint32(*edgeBits),
		TrimmingRounds: uint32(*rounds),
	}
	if err := job.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if *attempts < 1 {
		fmt.Fprintln(os.Stderr, "Error: attempts must be positive")
		os.Exit(2)
	}

	modes := factory.NewModeFactory()
	solver, err := modes.GetMode(*mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if !solver.IsAvailable() {
		caps := solver.GetCapabilities()
		fmt.Fprintf(os.Stderr, "Error: mode %s is unavailable: %s\n", solver.Name(), caps.Reason)
		os.Exit(2)
	}
	if err := solver.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer solver.Shutdown()

	switch {
	case *tuning:
		err = runTuning(solver, job, *attempts)
	case *monitor:
		err = runMonitor(solver, job, *attempts)
	default:
		err = runAttempts(solver, job, *attempts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildHeader decodes the hex header, or returns the all-zero reference
// header when none is configured.
func buildHeader(headerHex string) ([]byte, error) {
	if headerHex == "" {
		return make([]byte, core.HeaderLength), nil
	}
	header, err := hex.DecodeString(headerHex)
	if err != nil {
		return nil, fmt.Errorf("invalid header hex: %w", err)
	}
	return header, nil
}

// runAttempts solves consecutive nonces and prints each outcome. A run
// that completes is a success whether or not a cycle was found.
func runAttempts(solver core.SolverMode, job *core.Job, attempts int) error {
	for i := 0; i < attempts; i++ {
		attempt := *job
		attempt.Nonce = job.Nonce + uint64(i)

		result, err := solver.Solve(&attempt)
		if err != nil {
			return err
		}
		printResult(&attempt, result)
	}
	return nil
}

func printResult(job *core.Job, result *core.Result) {
	fmt.Printf("nonce %d: %d surviving edges (edge-gen %.3fs, trim %.3fs, search %.3fs)\n",
		job.Nonce, result.SurvivingEdges,
		result.Timings.EdgeGen, result.Timings.Trimming, result.Timings.Searching)
	if result.Found {
		fmt.Printf("solution:")
		for _, e := range result.Solution {
			fmt.Printf(" %d", e)
		}
		fmt.Println()
	} else {
		fmt.Println("no 42-cycle found")
	}
}

// runTuning benchmarks repeated solve attempts offline and reports
// timing statistics.
func runTuning(solver core.SolverMode, job *core.Job, attempts int) error {
	runner := timing.NewBenchmarkRunner()

	next := job.Nonce
	var solveErr error
	result := runner.Run("solve", attempts, func() {
		attempt := *job
		attempt.Nonce = next
		next++
		if _, err := solver.Solve(&attempt); err != nil && solveErr == nil {
			solveErr = err
		}
	})
	if solveErr != nil {
		return solveErr
	}

	runner.Log()
	fmt.Printf("tuning: %d attempts, avg %v, median %v, min %v, max %v\n",
		result.Iterations, result.AvgTime, result.MedianTime, result.MinTime, result.MaxTime)
	return nil
}

// uiWriter forwards log output into the monitor's log pane.
type uiWriter struct {
	program *tea.Program
}

func (w *uiWriter) Write(p []byte) (int, error) {
	w.program.Send(ui.AppendLogMsg{Line: string(p)})
	return len(p), nil
}

// runMonitor runs the attempts behind the live Bubble Tea monitor.
func runMonitor(solver core.SolverMode, job *core.Job, attempts int) error {
	model := ui.NewModel(job.EdgeBits, job.TrimmingRounds)
	p := tea.NewProgram(model, tea.WithAltScreen())

	previousOut := logrus.StandardLogger().Out
	logrus.SetOutput(&uiWriter{program: p})
	defer logrus.SetOutput(previousOut)

	var solveErr error
	go func() {
		for i := 0; i < attempts; i++ {
			attempt := *job
			attempt.Nonce = job.Nonce + uint64(i)
			p.Send(ui.AttemptStartMsg{Attempt: i + 1, Nonce: attempt.Nonce})

			result, err := solver.Solve(&attempt)
			if err != nil {
				solveErr = err
				break
			}
			p.Send(ui.AttemptDoneMsg{Nonce: attempt.Nonce, Result: result})
			if result.Found {
				p.Send(ui.AppendLogMsg{Line: fmt.Sprintf("nonce %d: solution %v", attempt.Nonce, *result.Solution)})
			} else {
				p.Send(ui.AppendLogMsg{Line: fmt.Sprintf("nonce %d: no cycle (%d survivors)", attempt.Nonce, result.SurvivingEdges)})
			}
		}
		p.Send(ui.RunDoneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		return err
	}
	return solveErr
}
