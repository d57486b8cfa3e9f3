package port

import (
	"context"

	"token_verifier/internal/entity"
)

// ContractSource is the explorer's view of a contract's published source.
type ContractSource struct {
	SourceCode   string
	ContractName string
	IsVerified   bool
}

// CreationInfo is the explorer's record of the contract-creation transaction.
type CreationInfo struct {
	CreatorAddress string
	CreatorLabel   string
	TxHash         string
}

// ExplorerClient defines the interface for block-explorer metadata lookups.
// Every failure mode (timeout, HTTP status, parse error) must surface as a
// typed error, never a silent zero value, so that callers can distinguish
// "no data" from "not yet asked".
type ExplorerClient interface {
	// ContractSource fetches published source text and verification status.
	ContractSource(ctx context.Context, chain entity.ChainDefinition, address string) (*ContractSource, error)

	// TopHolders fetches up to limit top-holder records with their
	// percentage of total supply.
	TopHolders(ctx context.Context, chain entity.ChainDefinition, address string, limit int) ([]entity.HolderRecord, error)

	// CreationInfo resolves the creation transaction to a creator address
	// and a known-entity label when the explorer has one.
	CreationInfo(ctx context.Context, chain entity.ChainDefinition, address string) (*CreationInfo, error)
}
