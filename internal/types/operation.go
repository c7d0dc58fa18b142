package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type OperationKind int

const (
	OperationKindUnknown OperationKind = iota
	OperationKindCall
	OperationKindDelegateCall
)

// OperationType is the execution mode the host sends for a Safe transaction.
// The host schema allows the enum name ("Call") or its ordinal as a JSON
// number (0); anything else decodes to OperationKindUnknown with the raw
// input kept so the caller can reject it by name.
type OperationType struct {
	Kind OperationKind
	Raw  string
}

var (
	OperationTypeCall         = OperationType{Kind: OperationKindCall, Raw: "Call"}
	OperationTypeDelegateCall = OperationType{Kind: OperationKindDelegateCall, Raw: "DelegateCall"}
)

// ParseOperationType resolves an operation type by name. Ordinals are only
// accepted as JSON numbers, so "0" is not a name.
func ParseOperationType(s string) OperationType {
	switch s {
	case "Call":
		return OperationTypeCall
	case "DelegateCall":
		return OperationTypeDelegateCall
	default:
		return OperationType{Kind: OperationKindUnknown, Raw: s}
	}
}

func (o OperationType) String() string {
	return o.Raw
}

func (o OperationType) MarshalJSON() ([]byte, error) {
	switch o.Kind {
	case OperationKindCall:
		return json.Marshal("Call")
	case OperationKindDelegateCall:
		return json.Marshal("DelegateCall")
	default:
		return nil, fmt.Errorf("unknown operation type: %s", o.Raw)
	}
}

func (o *OperationType) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = ParseOperationType(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		*o = OperationType{Kind: OperationKindUnknown, Raw: string(data)}
		return nil
	}
	ordinal, err := strconv.ParseInt(n.String(), 10, 64)
	switch {
	case err != nil:
		*o = OperationType{Kind: OperationKindUnknown, Raw: n.String()}
	case ordinal == 0:
		*o = OperationTypeCall
	case ordinal == 1:
		*o = OperationTypeDelegateCall
	default:
		*o = OperationType{Kind: OperationKindUnknown, Raw: n.String()}
	}
	return nil
}
