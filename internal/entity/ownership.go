package entity

// OwnershipInfo describes who controls a contract and how centralized that
// control looks. A failed creation-info lookup yields a degraded value with
// the failure recorded in Risks, never an error.
type OwnershipInfo struct {
	Owner               string   `json:"owner"`
	OwnerLabel          string   `json:"ownerLabel,omitempty"`
	IsMultisig          bool     `json:"isMultisig"`
	IsProxy             bool     `json:"isProxy"`
	ProxyImplementation string   `json:"proxyImplementation,omitempty"`
	Risks               []string `json:"risks,omitempty"`
}
