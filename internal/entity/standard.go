package entity

// Token standard labels used for display. A contract may match several
// standards at once; DetectedType only picks one for presentation.
const (
	StandardERC20   = "ERC20"
	StandardERC721  = "ERC721"
	StandardERC1155 = "ERC1155"
	StandardUnknown = "UNKNOWN"
)

// StandardDetection is the outcome of matching extracted selectors against
// the known token-standard reference sets.
type StandardDetection struct {
	IsERC20      bool     `json:"isERC20"`
	IsERC721     bool     `json:"isERC721"`
	IsERC1155    bool     `json:"isERC1155"`
	DetectedType string   `json:"detectedType"`
	Selectors    []string `json:"selectors,omitempty"` // 0x + 8 hex digits, first-seen order
	Confidence   int      `json:"confidence"`          // integer percent
}
