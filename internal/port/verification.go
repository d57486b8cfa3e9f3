package port

import (
	"context"

	"token_verifier/internal/entity"
)

// VerificationService is the engine's top-level entry point. The returned
// error is reserved for request-shape problems; every domain failure
// (malformed address, collaborator outage, unexpected panic recovery) is
// surfaced inside the result envelope so callers can render it uniformly.
type VerificationService interface {
	Verify(ctx context.Context, req entity.VerificationRequest) (*entity.VerificationResult, error)
}

// CrossChainService fans a full per-chain analysis out across a chain set
// and synthesizes bridge/wrapped-token indicators from the aggregate.
type CrossChainService interface {
	VerifyAcrossChains(ctx context.Context, address string, chainIDs []int64) (*entity.CrossChainInfo, error)
}

// GasPriceService keeps a cached per-chain gas price view refreshed in the
// background.
type GasPriceService interface {
	RefreshAll(ctx context.Context) error
	Current(chainID int64) (float64, bool) // price in gwei

	// RunRefreshLoop blocks refreshing on the configured interval until ctx
	// is cancelled; run it in its own goroutine.
	RunRefreshLoop(ctx context.Context)
}
