package pipeline

import (
	"context"
	"fmt"
)

// TaskName is a strongly-typed identifier for a build task.
type TaskName string

// Canonical task names.
const (
	TaskPrepare           TaskName = "prepare"
	TaskBuilding          TaskName = "building"
	TaskVerifyBuildResult TaskName = "verify_build_result"
	TaskFinish            TaskName = "finish"
)

// Task is a discrete unit of work in a build run.
type Task interface {
	Name() TaskName
	Run(ctx context.Context, bc *BuildContext) error
}

// TaskFunc is the body of a task.
type TaskFunc func(ctx context.Context, bc *BuildContext) error

// Named pairs a task name with its body.
func Named(name TaskName, fn TaskFunc) Task { return namedTask{name: name, fn: fn} }

type namedTask struct {
	name TaskName
	fn   TaskFunc
}

func (t namedTask) Name() TaskName                                  { return t.name }
func (t namedTask) Run(ctx context.Context, bc *BuildContext) error { return t.fn(ctx, bc) }

// TaskErrorKind classifies why a task stopped the run.
type TaskErrorKind string

const (
	TaskErrorFatal    TaskErrorKind = "fatal"
	TaskErrorCanceled TaskErrorKind = "canceled"
)

// TaskError is the error a run ends with, carrying the failing task.
type TaskError struct {
	Kind TaskErrorKind
	Task TaskName
	Err  error
}

func (e *TaskError) Error() string { return fmt.Sprintf("%s task %s: %v", e.Kind, e.Task, e.Err) }
func (e *TaskError) Unwrap() error { return e.Err }

func newFatalTaskError(task TaskName, err error) *TaskError {
	return &TaskError{Kind: TaskErrorFatal, Task: task, Err: err}
}

func newCanceledTaskError(task TaskName, err error) *TaskError {
	return &TaskError{Kind: TaskErrorCanceled, Task: task, Err: err}
}
