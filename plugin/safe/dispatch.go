package safe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vultisig/safe-api-plugin/common"
	"github.com/vultisig/safe-api-plugin/plugin"
)

type handler func(ctx context.Context, args json.RawMessage) (any, error)

func (p *SafePlugin) registerMethods() map[string]handler {
	return map[string]handler{
		"getServiceInfo":              bind(p, p.GetServiceInfo),
		"getServiceMasterCopiesInfo":  bind(p, p.GetServiceMasterCopiesInfo),
		"decodeData":                  bind(p, p.DecodeData),
		"getSafesByOwner":             bind(p, p.GetSafesByOwner),
		"getSafesByModule":            bind(p, p.GetSafesByModule),
		"getTransaction":              bind(p, p.GetTransaction),
		"getTransactionConfirmations": bind(p, p.GetTransactionConfirmations),
		"confirmTransaction":          bind(p, p.ConfirmTransaction),
		"getSafeInfo":                 bind(p, p.GetSafeInfo),
		"getSafeDelegates":            bind(p, p.GetSafeDelegates),
		"addSafeDelegate":             bind(p, p.AddSafeDelegate),
		"removeSafeDelegate":          bind(p, p.RemoveSafeDelegate),
		"getSafeCreationInfo":         bind(p, p.GetSafeCreationInfo),
		"estimateSafeTransaction":     bind(p, p.EstimateSafeTransaction),
		"proposeTransaction":          bind(p, p.ProposeTransaction),
		"getIncomingTransactions":     bind(p, p.GetIncomingTransactions),
		"getModuleTransactions":       bind(p, p.GetModuleTransactions),
		"getMultisigTransactions":     bind(p, p.GetMultisigTransactions),
		"getPendingTransactions":      bind(p, p.GetPendingTransactions),
		"getAllTransactions":          bind(p, p.GetAllTransactions),
		"getNextNonce":                bind(p, p.GetNextNonce),
		"getTokenList":                bind(p, p.GetTokenList),
		"getToken":                    bind(p, p.GetToken),
	}
}

// bind adapts a typed method to the JSON calling convention of the host.
func bind[A any, R any](p *SafePlugin, fn func(context.Context, A) (R, error)) handler {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var args A
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
			if err := json.Unmarshal(trimmed, &args); err != nil {
				return nil, fmt.Errorf("%w: %v", plugin.ErrInvalidArguments, err)
			}
		}
		if err := p.validate.Struct(args); err != nil {
			return nil, fmt.Errorf("%w: %v", plugin.ErrInvalidArguments, err)
		}
		return fn(ctx, args)
	}
}

func (p *SafePlugin) Methods() []string {
	names := make([]string, 0, len(p.methods))
	for name := range p.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs one plugin method. Errors from the transaction service are
// returned wrapped, never turned into a response.
func (p *SafePlugin) Invoke(ctx context.Context, method string, args json.RawMessage) (json.RawMessage, error) {
	h, ok := p.methods[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s", plugin.ErrUnknownMethod, method)
	}

	start := time.Now()
	logger := p.logger.WithField("method", method)
	result, err := h(ctx, args)
	if err != nil {
		if isArgumentError(err) {
			err = fmt.Errorf("%w: %w", plugin.ErrInvalidArguments, err)
		}
		logger.WithError(err).Error("plugin method failed")
		return nil, fmt.Errorf("fail to invoke %s, err: %w", method, err)
	}

	buf, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("fail to marshal %s response, err: %w", method, err)
	}
	logger.WithFields(logrus.Fields{
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("plugin method completed")
	return buf, nil
}

// isArgumentError reports errors caused by the caller's input rather than
// by the service.
func isArgumentError(err error) bool {
	return errors.Is(err, ErrUnknownOperationType) || errors.Is(err, common.ErrInvalidAddress)
}
