package tasks

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	QUEUE_NAME       = "safe_plugin_queue"
	TypePluginInvoke = "plugin:invoke"
)

var ErrTaskInProgress = errors.New("task is still in progress")

// InvokePayload is the body of a plugin:invoke task.
type InvokePayload struct {
	RequestID string          `json:"request_id"`
	Method    string          `json:"method"`
	Args      json.RawMessage `json:"args,omitempty"`
}

func NewInvokeTask(payload InvokePayload) (*asynq.Task, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("fail to marshal task payload, err: %w", err)
	}
	return asynq.NewTask(TypePluginInvoke, buf,
		asynq.MaxRetry(0),
		asynq.Timeout(2*time.Minute),
		asynq.Retention(10*time.Minute),
		asynq.Queue(QUEUE_NAME),
	), nil
}

// TaskInspector is the part of *asynq.Inspector used to read results.
type TaskInspector interface {
	GetTaskInfo(queue, id string) (*asynq.TaskInfo, error)
}

// GetTaskResult returns the result a completed task wrote, or
// ErrTaskInProgress while it is still queued or running.
func GetTaskResult(inspector TaskInspector, taskID string) ([]byte, error) {
	task, err := inspector.GetTaskInfo(QUEUE_NAME, taskID)
	if err != nil {
		return nil, fmt.Errorf("fail to get task info, err: %w", err)
	}
	switch task.State {
	case asynq.TaskStateCompleted:
		return task.Result, nil
	case asynq.TaskStateArchived:
		return nil, fmt.Errorf("task archived: %s", task.LastErr)
	case asynq.TaskStatePending, asynq.TaskStateActive, asynq.TaskStateScheduled,
		asynq.TaskStateRetry, asynq.TaskStateAggregating:
		return nil, ErrTaskInProgress
	default:
		return nil, fmt.Errorf("unexpected task state: %s", task.State)
	}
}
