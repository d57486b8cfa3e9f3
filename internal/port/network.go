package port

import (
	"context"
	"math/big"

	"token_verifier/internal/entity"
)

// ChainClient defines the interface for reading contract data from one
// blockchain network. Implementations are specific to network types
// (currently EVM only).
type ChainClient interface {
	// CodeAt fetches the deployed bytecode at the given address as a hex
	// string without the 0x prefix. A non-contract address yields an empty
	// string and a nil error; transport failures yield typed errors.
	CodeAt(ctx context.Context, address string) (string, error)

	// SuggestGasPrice fetches the current gas price suggestion in wei.
	SuggestGasPrice(ctx context.Context) (*big.Int, error)

	// Definition returns the chain definition associated with this client.
	Definition() entity.ChainDefinition
}

// ChainClientProvider defines the interface for providing chain clients.
// Implementations cache one connected client per chain.
type ChainClientProvider interface {
	GetClient(def entity.ChainDefinition) (ChainClient, error)
}

// ChainRegistry defines the interface for resolving chain definitions.
type ChainRegistry interface {
	// All returns every configured chain definition.
	All() []entity.ChainDefinition

	// ByChainID returns the definition for a chain id, and true when found.
	ByChainID(chainID int64) (entity.ChainDefinition, bool)
}
