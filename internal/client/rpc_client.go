package client

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"token_verifier/internal/entity"
	"token_verifier/internal/port"
	"token_verifier/pkg/metrics"
)

// EVMClient implements the port.ChainClient interface for EVM-compatible chains.
type EVMClient struct {
	ethClient      *ethclient.Client
	def            entity.ChainDefinition
	rpcCallTimeout time.Duration
}

// NewEVMClient creates a new EVM client for the given chain definition,
// trying the primary RPC endpoint first and then each fallback.
func NewEVMClient(def entity.ChainDefinition, connectionTimeout time.Duration, rpcCallTimeout time.Duration) (port.ChainClient, error) {
	rpcURLs := append([]string{def.PrimaryRPCURL}, def.FallbackRPCURLs...)
	var lastErr error

	for _, rpcURL := range rpcURLs {
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)

		ethClient, err := ethclient.DialContext(ctx, rpcURL)
		cancel()

		if err == nil {
			return &EVMClient{ethClient: ethClient, def: def, rpcCallTimeout: rpcCallTimeout}, nil
		}
		lastErr = fmt.Errorf("failed to connect to RPC %s: %w", rpcURL, err)
	}

	return nil, fmt.Errorf("all RPC connection attempts failed for chain %s: %w", def.Name, lastErr)
}

// CodeAt fetches the deployed bytecode at address, as hex without the 0x
// prefix. A non-contract address yields an empty string with a nil error;
// callers treat that as "not a contract", not as a failure.
func (c *EVMClient) CodeAt(ctx context.Context, address string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	code, err := c.ethClient.CodeAt(callCtx, common.HexToAddress(address), nil)
	if err != nil {
		metrics.IncCollaboratorError("rpc")
		return "", fmt.Errorf("eth_getCode failed for %s on %s: %w", address, c.def.Name, err)
	}
	return hex.EncodeToString(code), nil
}

// SuggestGasPrice fetches the current gas price suggestion in wei.
func (c *EVMClient) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	price, err := c.ethClient.SuggestGasPrice(callCtx)
	if err != nil {
		metrics.IncCollaboratorError("rpc")
		return nil, fmt.Errorf("eth_gasPrice failed on %s: %w", c.def.Name, err)
	}
	return price, nil
}

// Definition returns the chain definition for this client.
func (c *EVMClient) Definition() entity.ChainDefinition {
	return c.def
}
