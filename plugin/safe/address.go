package safe

import (
	"fmt"

	"github.com/vultisig/safe-api-plugin/common"
	"github.com/vultisig/safe-api-plugin/internal/types"
)

const (
	AddressPolicyChecksum = "checksum"
	AddressPolicyIdentity = "identity"
)

// AddressPolicy decides how addresses received from the host are rewritten
// before they reach the transaction service.
type AddressPolicy interface {
	Normalize(address string) (string, error)
}

// ChecksumAddressPolicy rewrites addresses to their EIP-55 form and rejects
// anything that is not a hex address.
type ChecksumAddressPolicy struct{}

func (ChecksumAddressPolicy) Normalize(address string) (string, error) {
	return common.ChecksumAddress(address)
}

// IdentityAddressPolicy forwards addresses untouched.
type IdentityAddressPolicy struct{}

func (IdentityAddressPolicy) Normalize(address string) (string, error) {
	return address, nil
}

func AddressPolicyByName(name string) (AddressPolicy, error) {
	switch name {
	case "", AddressPolicyChecksum:
		return ChecksumAddressPolicy{}, nil
	case AddressPolicyIdentity:
		return IdentityAddressPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown address policy: %s", name)
	}
}

func (p *SafePlugin) address(address string) (string, error) {
	return p.addresses.Normalize(address)
}

// optionalAddress normalizes an optional address; absent and empty input
// both stay absent.
func (p *SafePlugin) optionalAddress(address types.Optional[string]) (*string, error) {
	v, ok := types.NonEmpty(address).Get()
	if !ok {
		return nil, nil
	}
	normalized, err := p.addresses.Normalize(v)
	if err != nil {
		return nil, err
	}
	return &normalized, nil
}
