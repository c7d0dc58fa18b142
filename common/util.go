package common

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var ErrInvalidAddress = errors.New("invalid address")

// IsHexAddress reports whether s is a 20 byte hex address. The 0x prefix is
// optional; an upper-case 0X prefix is not accepted.
func IsHexAddress(s string) bool {
	hex := strings.TrimPrefix(s, "0x")
	return len(hex) == 2*common.AddressLength && common.IsHexAddress(hex)
}

// ChecksumAddress returns the EIP-55 mixed-case form of a hex address.
// All lower-case and all upper-case input is rewritten; mixed-case input must
// already carry a valid checksum.
func ChecksumAddress(s string) (string, error) {
	if !IsHexAddress(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	hex := strings.TrimPrefix(s, "0x")
	if isMixedCase(hex) && !IsChecksumAddress("0x"+hex) {
		return "", fmt.Errorf("%w: bad address checksum %q", ErrInvalidAddress, s)
	}
	return common.HexToAddress(hex).Hex(), nil
}

// IsChecksumAddress reports whether s is a 0x-prefixed address already in
// EIP-55 form.
func IsChecksumAddress(s string) bool {
	return strings.HasPrefix(s, "0x") && IsHexAddress(s) && common.HexToAddress(s).Hex() == s
}

func isMixedCase(s string) bool {
	return strings.ToLower(s) != s && strings.ToUpper(s) != s
}
