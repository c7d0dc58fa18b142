package safeapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// EIP-3770 short names of the networks the transaction service runs on.
var networkShortNames = map[int64]string{
	1:        "eth",
	5:        "gor",
	10:       "oeth",
	56:       "bnb",
	100:      "gno",
	137:      "matic",
	324:      "zksync",
	1101:     "zkevm",
	8453:     "base",
	42161:    "arb1",
	42220:    "celo",
	43114:    "avax",
	59144:    "linea",
	84532:    "basesep",
	11155111: "sep",
}

// ShortNameForChain returns the EIP-3770 prefix of a chain, if known.
func ShortNameForChain(chainID int64) (string, bool) {
	name, ok := networkShortNames[chainID]
	return name, ok
}

type eip3770Address struct {
	prefix  string
	address string
}

func parseEip3770Address(fullAddress string) (eip3770Address, error) {
	prefix, address, found := strings.Cut(fullAddress, ":")
	if !found {
		address, prefix = fullAddress, ""
	}
	if !common.IsHexAddress(address) || !strings.HasPrefix(address, "0x") {
		return eip3770Address{}, fmt.Errorf("invalid address: %s", address)
	}
	return eip3770Address{prefix: prefix, address: address}, nil
}

// resolveAddress validates an address that may carry an EIP-3770 prefix
// and returns the bare address. A prefix must name the adapter's chain.
func (c *Client) resolveAddress(ctx context.Context, fullAddress string) (string, error) {
	parsed, err := parseEip3770Address(fullAddress)
	if err != nil {
		return "", err
	}
	if parsed.prefix == "" {
		return parsed.address, nil
	}
	chainID, err := c.chainAdapter.ChainID(ctx)
	if err != nil {
		return "", fmt.Errorf("fail to get chain id, err: %w", err)
	}
	shortName, ok := ShortNameForChain(chainID.Int64())
	if !ok {
		return "", fmt.Errorf("no network prefix supported for the current chain id %s", chainID)
	}
	if parsed.prefix != shortName {
		return "", fmt.Errorf("the network prefix must match the current network, expected %s, got %s", shortName, parsed.prefix)
	}
	return parsed.address, nil
}
