package entity

// AddressValidation is the result of structurally validating a contract address.
// Malformed input never produces an error value; it produces IsValid=false with
// itemized Errors so that callers can render the problems uniformly.
type AddressValidation struct {
	Input    string   `json:"input"`
	Address  string   `json:"address"` // canonical lowercase 0x + 40 hex chars, empty when invalid
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}
