package plugin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

var (
	ErrUnknownMethod    = errors.New("unknown method")
	ErrInvalidArguments = errors.New("invalid arguments")
)

// Plugin is a module the host invokes by method name with a JSON argument
// record, receiving a JSON response record.
type Plugin interface {
	Name() string
	Version() string
	Methods() []string
	Invoke(ctx context.Context, method string, args json.RawMessage) (json.RawMessage, error)
}

// RemoteError is implemented by errors a remote service reported.
type RemoteError interface {
	error
	RemoteStatusCode() int
}

// Manifest describes a plugin to the host.
type Manifest struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Methods []string `json:"methods"`
}

func ManifestOf(p Plugin) Manifest {
	return Manifest{
		Name:    p.Name(),
		Version: p.Version(),
		Methods: p.Methods(),
	}
}

// StatusCode maps an Invoke error to the HTTP status reported to the host.
func StatusCode(err error) int {
	var remote RemoteError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnknownMethod):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidArguments):
		return http.StatusBadRequest
	case errors.As(err, &remote):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// ErrorMessage is the text reported to the host for an Invoke error. A
// remote service's own message is passed through unchanged.
func ErrorMessage(err error) string {
	var remote RemoteError
	if errors.As(err, &remote) {
		return remote.Error()
	}
	return err.Error()
}
