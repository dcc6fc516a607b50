package tasks

import "context"

// TaskRunnerInterface runs a batch of tasks to completion.
// Example usage:
//
//	runner := NewRunner(4)
//	summary, err := runner.Run(ctx, buildTasks)
type TaskRunnerInterface interface {
	Run(ctx context.Context, tasks []TaskInterface) (Summary, error)
}
