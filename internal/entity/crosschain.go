package entity

// ChainVerificationResult is the per-chain row of a cross-chain run. A chain
// that is unsupported, or whose analysis failed for any reason, is reported
// as Exists=false with Error set rather than aborting the batch.
type ChainVerificationResult struct {
	ChainID              int64     `json:"chainId"`
	ChainName            string    `json:"chainName,omitempty"`
	Exists               bool      `json:"exists"`
	Verified             bool      `json:"verified"`
	RiskLevel            RiskLevel `json:"riskLevel,omitempty"`
	OverallScore         int       `json:"overallScore"`
	Owner                string    `json:"owner,omitempty"`
	IsHighlyConcentrated bool      `json:"isHighlyConcentrated"`
	Error                string    `json:"error,omitempty"`
}

// CrossChainInfo aggregates per-chain results plus the bridge/wrapped-token
// indicators derived from them.
type CrossChainInfo struct {
	BaseAddress         string                    `json:"baseAddress"`
	PerChainResults     []ChainVerificationResult `json:"perChainResults"`
	TokensFound         int                       `json:"tokensFound"`
	VerifiedOnChains    int                       `json:"verifiedOnChains"`
	HighRiskOnChains    int                       `json:"highRiskOnChains"`
	MediumRiskOnChains  int                       `json:"mediumRiskOnChains"`
	BridgeIndicators    []string                  `json:"bridgeIndicators,omitempty"`
	WrappedVersions     []string                  `json:"wrappedVersions,omitempty"`
	Recommendations     []string                  `json:"recommendations,omitempty"`
}
