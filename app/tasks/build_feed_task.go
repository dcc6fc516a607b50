package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/lysyi3m/feedtree/app/document"
	"github.com/lysyi3m/feedtree/app/feed"
)

type BuildFeedTask struct {
	Task
	Document  *document.Document
	Format    feed.Format
	OutputDir string
	generator *feed.Generator
}

func NewBuildFeedTask(doc *document.Document, format feed.Format, outputDir string, generator *feed.Generator) *BuildFeedTask {
	return &BuildFeedTask{
		Task:      NewTask(TaskTypeBuildFeed, doc.Name),
		Document:  doc,
		Format:    format,
		OutputDir: outputDir,
		generator: generator,
	}
}

// NewBuildFeedTasks creates one task per document and format, ordered by
// document name.
func NewBuildFeedTasks(docs map[string]*document.Document, outputDir string, generator *feed.Generator) ([]TaskInterface, error) {
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)

	var tasks []TaskInterface
	for _, name := range names {
		doc := docs[name]
		formats, err := doc.FeedFormats()
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", name, err)
		}
		for _, format := range formats {
			tasks = append(tasks, NewBuildFeedTask(doc, format, outputDir, generator))
		}
	}
	return tasks, nil
}

func (t *BuildFeedTask) Path() string {
	return filepath.Join(t.OutputDir, t.FeedName+t.Format.Extension())
}

func (t *BuildFeedTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	channel, entries := t.Document.Feed()
	out, err := t.generator.Run(t.Format, channel, entries)
	if err != nil {
		return fmt.Errorf("failed to build %s feed: %w", t.Format, err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := writeFile(t.Path(), []byte(out)); err != nil {
		return fmt.Errorf("failed to write %s: %w", t.Path(), err)
	}

	slog.Info("Task completed",
		"type", "BuildFeed",
		"feed", t.FeedName,
		"format", t.Format,
		"path", t.Path(),
		"entries", len(entries),
		"duration", t.GetDuration())

	return nil
}

// writeFile replaces path through a temporary file in the same directory so
// readers never see a partial feed.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
