package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

type Summary struct {
	Built  int
	Failed int
}

type Runner struct {
	workerCount int
}

func NewRunner(workerCount int) TaskRunnerInterface {
	return &Runner{workerCount: max(workerCount, 1)}
}

// Run executes every task with at most workerCount in flight. A failing task
// does not stop the others; all failures are joined into the returned error.
func (r *Runner) Run(ctx context.Context, tasks []TaskInterface) (Summary, error) {
	var (
		mu      sync.Mutex
		summary Summary
		errs    []error
	)

	var g errgroup.Group
	g.SetLimit(r.workerCount)

	for _, task := range tasks {
		g.Go(func() error {
			task.Start()
			err := task.Execute(ctx)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				slog.Error("Task execution failed", "type", string(task.GetType()), "id", task.GetID(), "feed", task.GetFeedName(), "error", err)
				summary.Failed++
				errs = append(errs, fmt.Errorf("%s: %w", task.GetFeedName(), err))
				return nil
			}
			summary.Built++
			return nil
		})
	}

	_ = g.Wait()

	slog.Debug("Tasks finished", "built", summary.Built, "failed", summary.Failed)

	return summary, errors.Join(errs...)
}
