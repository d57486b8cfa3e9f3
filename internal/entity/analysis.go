package entity

// RiskLevel classifies an overall score into one of four buckets.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelMedium   RiskLevel = "MEDIUM"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelCritical RiskLevel = "CRITICAL"
)

// TokenAnalysis aggregates every per-chain signal for one (address, chainId)
// pair. It is the unit stored in the verification cache.
type TokenAnalysis struct {
	Address         string             `json:"address"`
	ChainID         int64              `json:"chainId"`
	ChainName       string             `json:"chainName,omitempty"`
	IsContract      bool               `json:"isContract"`
	Standard        StandardDetection  `json:"standard"`
	Ownership       OwnershipInfo      `json:"ownership"`
	Holders         HolderDistribution `json:"holders"`
	Findings        RiskFindings       `json:"findings"`
	OverallScore    int                `json:"overallScore"` // integer [0,100]
	RiskLevel       RiskLevel          `json:"riskLevel"`
	Recommendations []string           `json:"recommendations,omitempty"`
	Error           string             `json:"error,omitempty"`
}

// OutcomeStatus tags how an analysis (or one of its sub-analyses) completed.
type OutcomeStatus int

const (
	// OutcomeOK means every collaborator call succeeded.
	OutcomeOK OutcomeStatus = iota
	// OutcomeDegraded means at least one sub-analysis substituted its
	// documented degraded default after a collaborator failure.
	OutcomeDegraded
	// OutcomeError means the request was rejected before any scoring ran
	// (malformed address) or the top-level run failed unexpectedly.
	OutcomeError
)

// AnalysisOutcome is a tagged result variant so that callers can branch
// exhaustively instead of inspecting an optional error field.
type AnalysisOutcome struct {
	Status   OutcomeStatus
	Analysis *TokenAnalysis
	Reason   string
}
