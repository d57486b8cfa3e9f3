package client

// Etherscan-compatible response envelopes. Status is "1" on success; NOTOK
// responses carry the failure text in Message/Result.
type explorerEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type sourceCodeEnvelope struct {
	explorerEnvelope
	Result []sourceCodeRecord `json:"result"`
}

type sourceCodeRecord struct {
	SourceCode   string `json:"SourceCode"`
	ContractName string `json:"ContractName"`
	ABI          string `json:"ABI"`
}

type creationEnvelope struct {
	explorerEnvelope
	Result []creationRecord `json:"result"`
}

type creationRecord struct {
	ContractAddress string `json:"contractAddress"`
	ContractCreator string `json:"contractCreator"`
	TxHash          string `json:"txHash"`
	CreatorLabel    string `json:"contractCreatorLabel"`
}

type holderListEnvelope struct {
	explorerEnvelope
	Result []holderListRecord `json:"result"`
}

type holderListRecord struct {
	TokenHolderAddress  string `json:"TokenHolderAddress"`
	TokenHolderQuantity string `json:"TokenHolderQuantity"`
}

type tokenSupplyEnvelope struct {
	explorerEnvelope
	Result string `json:"result"`
}
