package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/vultisig/safe-api-plugin/plugin"
)

// InvokeResult is what a plugin:invoke task writes as its result. Failed
// invocations complete too; their error is carried here for the caller.
type InvokeResult struct {
	Status int             `json:"status"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

func NewInvokeResult(result json.RawMessage, err error) InvokeResult {
	if err != nil {
		return InvokeResult{
			Status: plugin.StatusCode(err),
			Error:  plugin.ErrorMessage(err),
		}
	}
	return InvokeResult{Status: 200, Result: result}
}

func DecodeInvokeResult(buf []byte) (InvokeResult, error) {
	var result InvokeResult
	if err := json.Unmarshal(buf, &result); err != nil {
		return InvokeResult{}, fmt.Errorf("fail to decode task result, err: %w", err)
	}
	return result, nil
}
