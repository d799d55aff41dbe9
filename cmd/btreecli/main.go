package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/orderedindex"
	"github.com/npillmayer/orderedindex/cli"
	"github.com/npillmayer/orderedindex/formatter"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/uax/uax11"
)

var shouldSeed, useColor, traceEvents *bool
var minDegree, seedNumRecords *int
var traceLevel *string

func main() {
	setupFlags()
	gtrace.CoreTracer = gologadapter.New()
	gtrace.CoreTracer.SetTraceLevel(levelFromFlag(*traceLevel))
	if !*useColor {
		color.NoColor = true
	}

	index, err := orderedindex.New[string, string](*minDegree)
	if err != nil {
		log.Fatal(err)
	}
	defer index.Close()

	if *traceEvents {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		events, err := index.Subscribe(ctx, 64)
		if err != nil {
			log.Fatal(err)
		}
		go func() {
			for e := range events {
				gtrace.CoreTracer.Infof("%s %q: %d keys, height %d", e.Op, e.Key, e.Len, e.Height)
			}
		}()
	}

	if *shouldSeed {
		cli.Seed(index, *seedNumRecords)
	}

	config := formatter.ConfigFromTerminal()
	config.Context = uax11.ContextFromEnvironment()
	scanner := bufio.NewScanner(os.Stdin)
	demo := cli.NewCli(scanner, os.Stdout, index, config)
	if err := demo.Start(); err != nil {
		log.Fatal(err)
	}
}

func setupFlags() {
	minDegree = flag.Int("degree", 3, "Minimum degree t of the B-tree (at least 2).")
	shouldSeed = flag.Bool("seed", false, "Seed the index using records created with go-faker.")
	seedNumRecords = flag.Int("records", 100, "Amount of records to seed the index with upon startup.")
	useColor = flag.Bool("color", true, "Print tree levels in color.")
	traceEvents = flag.Bool("events", false, "Trace every change of the index.")
	traceLevel = flag.String("trace", "Error", "Trace level (Debug, Info, Error).")
	flag.Usage = func() {
		fmt.Println("\nB-Tree CLI\n\nArguments:")
		flag.PrintDefaults()
	}
	flag.Parse()
}

func levelFromFlag(level string) tracing.TraceLevel {
	switch strings.ToLower(level) {
	case "debug":
		return tracing.LevelDebug
	case "info":
		return tracing.LevelInfo
	}
	return tracing.LevelError
}
