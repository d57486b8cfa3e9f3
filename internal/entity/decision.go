package entity

// Decision reasons form a fixed table; exactly one is chosen per decision.
const (
	ReasonSafeAutomatable   = "Token passed all safety checks and can be automated"
	ReasonSafeManual        = "Token is safe but automation is blocked by outstanding findings"
	ReasonRequiresApproval  = "Token has risks that require manual approval before automation"
	ReasonUnsafe            = "Token failed safety verification"
	ReasonValidationFailed  = "Token address failed validation"
	ReasonVerificationError = "Verification error"
)

// VerificationDecision is the automatable yes/no outcome derived from a
// TokenAnalysis (plus optional cross-chain aggregates). It is a pure
// function of its inputs and is never persisted on its own.
type VerificationDecision struct {
	IsSafe           bool     `json:"isSafe"`
	CanAutomate      bool     `json:"canAutomate"`
	RequiresApproval bool     `json:"requiresApproval"`
	Risks            []string `json:"risks,omitempty"`
	Reason           string   `json:"reason"`
}
