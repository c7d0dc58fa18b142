package safe

import (
	"errors"
	"fmt"

	"github.com/vultisig/safe-api-plugin/internal/safeapi"
	"github.com/vultisig/safe-api-plugin/internal/types"
)

var ErrUnknownOperationType = errors.New("unknown operation type")

func toCoreOperationType(operationType types.OperationType) (safeapi.OperationType, error) {
	switch operationType.Kind {
	case types.OperationKindCall:
		return safeapi.OperationTypeCall, nil
	case types.OperationKindDelegateCall:
		return safeapi.OperationTypeDelegateCall, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownOperationType, operationType.Raw)
	}
}
