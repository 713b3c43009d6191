// Command textcreator turns a line of text into a printable mesh.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"text-creator/config"
	"text-creator/core"
	"text-creator/editor"
	"text-creator/scene"
	"text-creator/task"
)

func main() {
	var (
		cfgPath   = flag.String("config", "", "TOML configuration file")
		text      = flag.String("text", "", "text to create")
		open      = flag.String("open", "", "composition file to reopen instead of -text")
		save      = flag.String("save", "", "write the composition to this file before exporting")
		spacing   = flag.Float64("spacing", 0, "letter spacing factor")
		size      = flag.Float64("size", 0, "size factor")
		height    = flag.Float64("height", 0, "height factor")
		underline = flag.Bool("underline", true, "add an underline")
		format    = flag.String("format", "", "output format: stl, obj or glb")
		out       = flag.String("out", "", "output directory")
		verbose   = flag.Bool("v", false, "log debug output")
		dump      = flag.Bool("dump-config", false, "print the effective configuration and exit")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *format != "" {
		cfg.Export.Format = *format
	}
	if *out != "" {
		cfg.Export.OutputDir = *out
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if *dump {
		if err := config.Write(os.Stdout, cfg); err != nil {
			log.Fatal(err)
		}
		return
	}
	if *text == "" && *open == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	e, err := editor.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}

	var insert *task.Task[*scene.SolidSet]
	if *open != "" {
		insert, err = e.OpenComposition(ctx, *open)
	} else {
		insert, err = e.InsertText(ctx, *text)
	}
	if err != nil {
		log.Fatal(err)
	}
	showProgress("meshing", insert.Progress())
	if err := e.Await(ctx); err != nil {
		log.Fatal(err)
	}

	// sliders only move when their flag was given
	flag.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "spacing":
			err = e.SetSpacing(float32(*spacing))
		case "size":
			err = e.SetSize(float32(*size))
		case "height":
			err = e.SetHeight(float32(*height))
		case "underline":
			err = e.SetUnderline(*underline)
		}
	})
	if err != nil {
		log.Fatal(err)
	}

	if *save != "" {
		if err := e.SaveComposition(*save); err != nil {
			log.Fatal(err)
		}
	}

	export, err := e.MergeAndExport(ctx)
	if err != nil {
		log.Fatal(err)
	}
	showProgress("exporting", export.Progress())
	if err := e.Await(ctx); err != nil {
		if errors.Is(err, editor.ErrPermissionDenied) {
			log.Fatalf("Cannot write to %s: %v", cfg.Export.OutputDir, err)
		}
		log.Fatal(err)
	}

	fmt.Println(e.LastExport())
}

func showProgress(label string, progress <-chan int) {
	for p := range progress {
		fmt.Fprintf(os.Stderr, "\r%s %3d%%", label, p)
	}
	fmt.Fprintln(os.Stderr)
}
