package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/vultisig/safe-api-plugin/internal/tasks"
	"github.com/vultisig/safe-api-plugin/plugin"
	"github.com/vultisig/safe-api-plugin/storage"
)

const asyncRequestTTL = 10 * time.Minute

type ErrorResponse struct {
	Message string `json:"message"`
}

func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{
		Message: message,
	}
}

type InvokeAsyncResponse struct {
	RequestID string `json:"request_id"`
	TaskID    string `json:"task_id"`
}

type asyncInvokeHeaders struct {
	RequestID string `header:"X-Request-Id" validate:"omitempty,max=128"`
}

type invokeResultRequest struct {
	TaskID string `param:"taskId" validate:"required,uuid"`
}

func (s *Server) GetManifest(c echo.Context) error {
	return c.JSON(http.StatusOK, plugin.ManifestOf(s.plugin))
}

// Invoke runs a plugin method and answers with its response record.
func (s *Server) Invoke(c echo.Context) error {
	method := c.Param("method")
	args, err := readArgs(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse(err.Error()))
	}

	result, err := s.plugin.Invoke(c.Request().Context(), method, args)
	if err != nil {
		return s.invokeError(c, method, err)
	}
	return c.JSONBlob(http.StatusOK, result)
}

// InvokeAsync queues a plugin method on the worker. Repeating a request
// with the same X-Request-ID returns the task queued the first time, also
// when both requests arrive together.
func (s *Server) InvokeAsync(c echo.Context) error {
	method := c.Param("method")
	if !slices.Contains(s.plugin.Methods(), method) {
		return c.JSON(http.StatusNotFound, NewErrorResponse(fmt.Sprintf("%s: %s", plugin.ErrUnknownMethod, method)))
	}

	var headers asyncInvokeHeaders
	if err := (&echo.DefaultBinder{}).BindHeaders(c, &headers); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid request headers"))
	}
	if err := c.Validate(&headers); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse(err.Error()))
	}
	args, err := readArgs(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse(err.Error()))
	}

	requestID := headers.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}
	ctx := c.Request().Context()
	sessionKey := "invoke:" + requestID
	taskID := invokeTaskID(requestID)
	claimed, err := s.redis.SetNX(ctx, sessionKey, taskID, asyncRequestTTL)
	if err != nil {
		return fmt.Errorf("fail to claim request id, err: %w", err)
	}
	if !claimed {
		queued, err := s.redis.Get(ctx, sessionKey)
		switch {
		case err == nil:
			taskID = queued
		case !errors.Is(err, storage.ErrNotFound):
			return fmt.Errorf("fail to get session, err: %w", err)
		}
		return c.JSON(http.StatusOK, InvokeAsyncResponse{RequestID: requestID, TaskID: taskID})
	}

	task, err := tasks.NewInvokeTask(tasks.InvokePayload{
		RequestID: requestID,
		Method:    method,
		Args:      args,
	})
	if err == nil {
		_, err = s.client.EnqueueContext(ctx, task, asynq.TaskID(taskID))
	}
	// a conflict means the task is already queued under this id
	if err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
		if delErr := s.redis.Delete(ctx, sessionKey); delErr != nil {
			s.logger.WithError(delErr).Error("fail to release session")
		}
		return fmt.Errorf("fail to enqueue task, err: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"method":     method,
		"request_id": requestID,
		"task_id":    taskID,
	}).Info("invoke task enqueued")
	return c.JSON(http.StatusOK, InvokeAsyncResponse{RequestID: requestID, TaskID: taskID})
}

// invokeTaskID derives the asynq task id from a request id, so a request
// can only ever be queued once.
func invokeTaskID(requestID string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("safe-api-plugin/invoke/"+requestID)).String()
}

// GetInvokeResult reports the outcome of an async invocation.
func (s *Server) GetInvokeResult(c echo.Context) error {
	var req invokeResultRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid task id"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid task id"))
	}

	buf, err := tasks.GetTaskResult(s.inspector, req.TaskID)
	switch {
	case errors.Is(err, tasks.ErrTaskInProgress):
		return c.JSON(http.StatusAccepted, NewErrorResponse("Task is still in progress"))
	case errors.Is(err, asynq.ErrTaskNotFound), errors.Is(err, asynq.ErrQueueNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("task not found"))
	case err != nil:
		return err
	}

	result, err := tasks.DecodeInvokeResult(buf)
	if err != nil {
		return err
	}
	if result.Error != "" {
		return c.JSON(result.Status, NewErrorResponse(result.Error))
	}
	if len(result.Result) == 0 {
		return c.JSONBlob(http.StatusOK, []byte("null"))
	}
	return c.JSONBlob(http.StatusOK, result.Result)
}

func (s *Server) invokeError(c echo.Context, method string, err error) error {
	status := plugin.StatusCode(err)
	logger := s.logger.WithError(err).WithField("method", method)
	if status >= http.StatusInternalServerError {
		logger.Error("invoke failed")
	} else {
		logger.Info("invoke rejected")
	}
	return c.JSON(status, NewErrorResponse(plugin.ErrorMessage(err)))
}

func readArgs(c echo.Context) ([]byte, error) {
	args, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, fmt.Errorf("fail to read body, err: %w", err)
	}
	return args, nil
}
