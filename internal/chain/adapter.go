package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/ethclient"
)

// EthAdapter answers chain queries through an Ethereum JSON-RPC endpoint.
type EthAdapter struct {
	rpcClient *ethclient.Client
}

func NewEthAdapter(ctx context.Context, rpcURL string) (*EthAdapter, error) {
	rpcClient, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("fail to dial rpc %s, err: %w", rpcURL, err)
	}
	return &EthAdapter{rpcClient: rpcClient}, nil
}

func (a *EthAdapter) ChainID(ctx context.Context) (*big.Int, error) {
	chainID, err := a.rpcClient.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("fail to get chain id, err: %w", err)
	}
	return chainID, nil
}

func (a *EthAdapter) Close() {
	a.rpcClient.Close()
}

// StaticAdapter reports a fixed chain id. Used when no RPC endpoint is
// configured.
type StaticAdapter struct {
	chainID *big.Int
}

func NewStaticAdapter(chainID int64) *StaticAdapter {
	return &StaticAdapter{chainID: big.NewInt(chainID)}
}

func (a *StaticAdapter) ChainID(context.Context) (*big.Int, error) {
	return new(big.Int).Set(a.chainID), nil
}
