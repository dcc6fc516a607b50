package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lysyi3m/feedtree/app/document"
	"github.com/lysyi3m/feedtree/app/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.UnixMilli(1_234_567_890_123).UTC()

func testGenerator() *feed.Generator {
	return &feed.Generator{Now: func() time.Time { return testNow }}
}

func parseDocument(t *testing.T, name, content string) *document.Document {
	t.Helper()
	doc, err := document.Parse(name, []byte(content))
	require.NoError(t, err)
	return doc
}

const blogDocument = `
channel:
  title: Blog
  url: https://blog.example.com
  author: Jane
entries:
  - title: Hello
    url: https://blog.example.com/hello
`

type stubTask struct {
	Task
	err     error
	running *int32
	peak    *int32
}

func (s *stubTask) Execute(ctx context.Context) error {
	n := atomic.AddInt32(s.running, 1)
	for {
		peak := atomic.LoadInt32(s.peak)
		if n <= peak || atomic.CompareAndSwapInt32(s.peak, peak, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	atomic.AddInt32(s.running, -1)
	return s.err
}

func TestBuildFeedTaskWritesFile(t *testing.T) {
	dir := t.TempDir()
	doc := parseDocument(t, "blog", blogDocument)

	task := NewBuildFeedTask(doc, feed.FormatAtom, dir, testGenerator())
	assert.Equal(t, TaskTypeBuildFeed, task.GetType())
	assert.Equal(t, "blog", task.GetFeedName())
	assert.NotEmpty(t, task.GetID())
	assert.Equal(t, filepath.Join(dir, "blog.atom"), task.Path())

	task.Start()
	require.NoError(t, task.Execute(context.Background()))

	data, err := os.ReadFile(task.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), `<feed xmlns="http://www.w3.org/2005/Atom">`)
	assert.Contains(t, string(data), "<title>Hello</title>")

	leftovers, err := filepath.Glob(filepath.Join(dir, ".*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestBuildFeedTaskCancelled(t *testing.T) {
	dir := t.TempDir()
	task := NewBuildFeedTask(parseDocument(t, "blog", blogDocument), feed.FormatRSS, dir, testGenerator())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, task.Execute(ctx), context.Canceled)
	assert.NoFileExists(t, task.Path())
}

func TestBuildFeedTaskInvalidFeed(t *testing.T) {
	dir := t.TempDir()
	doc := parseDocument(t, "untitled", "channel:\n  url: https://example.com\n")

	err := NewBuildFeedTask(doc, feed.FormatRSS, dir, testGenerator()).Execute(context.Background())
	assert.ErrorIs(t, err, feed.ErrMissingChannelTitle)
	assert.NoFileExists(t, filepath.Join(dir, "untitled.rss"))
}

func TestNewBuildFeedTasks(t *testing.T) {
	docs := map[string]*document.Document{
		"blog":  parseDocument(t, "blog", blogDocument),
		"alpha": parseDocument(t, "alpha", "formats: [atom]\n"+blogDocument),
	}

	tasks, err := NewBuildFeedTasks(docs, "out", testGenerator())
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	var paths []string
	for _, task := range tasks {
		paths = append(paths, task.(*BuildFeedTask).Path())
	}
	assert.Equal(t, []string{
		filepath.Join("out", "alpha.atom"),
		filepath.Join("out", "blog.rss"),
		filepath.Join("out", "blog.atom"),
	}, paths)
}

func TestRunnerBuildsAllDocuments(t *testing.T) {
	dir := t.TempDir()
	docs := map[string]*document.Document{
		"blog":     parseDocument(t, "blog", blogDocument),
		"untitled": parseDocument(t, "untitled", "formats: [rss]\nchannel:\n  url: https://example.com\n"),
	}

	tasks, err := NewBuildFeedTasks(docs, dir, testGenerator())
	require.NoError(t, err)

	summary, err := NewRunner(2).Run(context.Background(), tasks)
	assert.Equal(t, Summary{Built: 2, Failed: 1}, summary)
	require.Error(t, err)
	assert.ErrorIs(t, err, feed.ErrMissingChannelTitle)
	assert.Contains(t, err.Error(), "untitled")

	assert.FileExists(t, filepath.Join(dir, "blog.rss"))
	assert.FileExists(t, filepath.Join(dir, "blog.atom"))
	assert.NoFileExists(t, filepath.Join(dir, "untitled.rss"))
}

func TestRunnerLimitsConcurrency(t *testing.T) {
	var running, peak int32
	boom := errors.New("boom")

	var tasks []TaskInterface
	for i := 0; i < 8; i++ {
		task := &stubTask{Task: NewTask(TaskTypeBuildFeed, "stub"), running: &running, peak: &peak}
		if i == 3 {
			task.err = boom
		}
		tasks = append(tasks, task)
	}

	summary, err := NewRunner(2).Run(context.Background(), tasks)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Summary{Built: 7, Failed: 1}, summary)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))

	for _, task := range tasks {
		assert.NotNil(t, task.(*stubTask).StartedAt)
	}
}

func TestRunnerEmpty(t *testing.T) {
	summary, err := NewRunner(0).Run(context.Background(), nil)
	assert.NoError(t, err)
	assert.Equal(t, Summary{}, summary)
}

func TestTaskDuration(t *testing.T) {
	task := NewTask(TaskTypeBuildFeed, "blog")
	assert.Zero(t, task.GetDuration())

	task.Start()
	time.Sleep(time.Millisecond)
	assert.Greater(t, task.GetDuration(), time.Duration(0))
}
