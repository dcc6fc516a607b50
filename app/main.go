package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lysyi3m/feedtree/app/cfg"
	"github.com/lysyi3m/feedtree/app/document"
	"github.com/lysyi3m/feedtree/app/feed"
	"github.com/lysyi3m/feedtree/app/tasks"
)

func main() {
	appCfg, err := cfg.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if appCfg == nil {
		// Help was shown
		return
	}
	if appCfg.ShowVersion {
		fmt.Println("feedtree", appCfg.Version)
		return
	}

	level := slog.LevelInfo
	if appCfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, appCfg); err != nil {
		slog.Error("Build failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, appCfg *cfg.Cfg) error {
	info, err := os.Stat(appCfg.Input)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	generator := feed.NewGenerator(appCfg.Indent)

	if info.IsDir() {
		return buildAll(ctx, appCfg, generator)
	}
	return buildOne(appCfg, generator)
}

func buildOne(appCfg *cfg.Cfg, generator *feed.Generator) error {
	format, err := feed.ParseFormat(appCfg.Format)
	if err != nil {
		return err
	}

	doc, err := document.LoadFile(appCfg.Input)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", appCfg.Input, err)
	}

	channel, entries := doc.Feed()
	out, err := generator.Run(format, channel, entries)
	if err != nil {
		return fmt.Errorf("failed to build %s: %w", doc.Name, err)
	}

	if err := writeOutput(appCfg.Output, out); err != nil {
		return err
	}

	slog.Debug("Feed built", "feed", doc.Name, "format", format, "entries", len(entries))
	return nil
}

// writeOutput writes to stdout when path is empty or "-".
func writeOutput(path, out string) error {
	if path == "" || path == "-" {
		if _, err := io.WriteString(os.Stdout, out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if _, err := io.WriteString(f, out); err != nil {
		f.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	return nil
}

func buildAll(ctx context.Context, appCfg *cfg.Cfg, generator *feed.Generator) error {
	outputDir := appCfg.Output
	if outputDir == "" || outputDir == "-" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	slog.Info("Loading feed documents", "dir", appCfg.Input)
	docs, err := document.NewLoader(appCfg.Input).LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}

	buildTasks, err := tasks.NewBuildFeedTasks(docs, outputDir, generator)
	if err != nil {
		return err
	}

	slog.Info("Building feeds", "documents", len(docs), "tasks", len(buildTasks), "workers", appCfg.WorkerCount)

	summary, err := tasks.NewRunner(appCfg.WorkerCount).Run(ctx, buildTasks)
	slog.Info("Build finished", "built", summary.Built, "failed", summary.Failed, "output", outputDir)
	return err
}
