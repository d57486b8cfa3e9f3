package entity

// VerificationRequest is the external request shape. ChainID falls back to
// the configured default chain when zero; ChainIDs only applies when
// CrossChainVerification is set.
type VerificationRequest struct {
	TokenAddress           string  `json:"tokenAddress"`
	ChainID                int64   `json:"chainId,omitempty"`
	CrossChainVerification bool    `json:"crossChainVerification,omitempty"`
	ChainIDs               []int64 `json:"chainIds,omitempty"`
}

// VerificationResult is the envelope returned for every verification call,
// including all failure paths. Timestamp is ISO-8601 (RFC 3339).
type VerificationResult struct {
	RequestID          string                `json:"requestId"`
	Timestamp          string                `json:"timestamp"`
	ChainAnalysis      *TokenAnalysis        `json:"chainAnalysis,omitempty"`
	CrossChainAnalysis *CrossChainInfo       `json:"crossChainAnalysis,omitempty"`
	Decision           VerificationDecision  `json:"decision"`
	FormattedReport    string                `json:"formattedReport"`
}
