package entity

// ContractSnapshot captures everything fetched about a contract for a single
// verification run. It is built once per (address, chainId) request and is
// immutable after the fetch phase.
type ContractSnapshot struct {
	Address        string `json:"address"`
	ChainID        int64  `json:"chainId"`
	RawBytecode    string `json:"-"` // hex without the 0x prefix, empty for non-contracts
	SourceText     string `json:"-"`
	SourceVerified bool   `json:"sourceVerified"`
	IsContract     bool   `json:"isContract"`
}
