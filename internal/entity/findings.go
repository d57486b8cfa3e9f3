package entity

// RiskFindings is the outcome of the bytecode/source heuristics. Each boolean
// flag has a matching human-readable entry in Risks; RiskCount is the plain
// length of Risks (it is used downstream as a penalty multiplier, not a
// weighted sum).
type RiskFindings struct {
	HasSelfdestruct bool     `json:"hasSelfdestruct"`
	HasMinting      bool     `json:"hasMinting"`
	IsPausable      bool     `json:"isPausable"`
	HasBlacklist    bool     `json:"hasBlacklist"`
	ProxyPatterns   bool     `json:"proxyPatterns"`
	UnverifiedCode  bool     `json:"unverifiedCode"`
	Risks           []string `json:"risks,omitempty"`
	RiskCount       int      `json:"riskCount"`
}
