package bytecode

import (
	"math"

	"token_verifier/internal/entity"
)

// Reference selector sets per token standard. The loose ERC-721 set carries
// isApprovedForAll as an eighth entry; the strict set does not.
var (
	erc20Selectors = []string{
		"0xa9059cbb", // transfer(address,uint256)
		"0x23b872dd", // transferFrom(address,address,uint256)
		"0x095ea7b3", // approve(address,uint256)
		"0x18160ddd", // totalSupply()
		"0x70a08231", // balanceOf(address)
		"0xdd62ed3e", // allowance(address,address)
	}
	erc721Selectors = []string{
		"0x6352211e", // ownerOf(uint256)
		"0x42842e0e", // safeTransferFrom(address,address,uint256)
		"0x23b872dd", // transferFrom(address,address,uint256)
		"0x095ea7b3", // approve(address,uint256)
		"0xa22cb465", // setApprovalForAll(address,bool)
		"0x081812fc", // getApproved(uint256)
		"0x70a08231", // balanceOf(address)
	}
	erc721SelectorsLoose = append(append([]string{}, erc721Selectors...),
		"0xe985e9c5", // isApprovedForAll(address,address)
	)
	erc1155Selectors = []string{
		"0x00fdd58e", // balanceOf(address,uint256)
		"0x4e1273f4", // balanceOfBatch(address[],uint256[])
		"0xa22cb465", // setApprovalForAll(address,bool)
		"0xe985e9c5", // isApprovedForAll(address,address)
		"0xf242432a", // safeTransferFrom(address,address,uint256,uint256,bytes)
		"0x2eb2c2d6", // safeBatchTransferFrom(address,address,uint256[],uint256[],bytes)
	}
)

// confidenceDivisorCap bounds the reference-function total used as the
// confidence denominator.
const confidenceDivisorCap = 20

// ClassifierConfig selects which match-threshold variant the classifier
// applies. Thresholds are preserved exactly from the first generation of
// this engine; recalibration needs product sign-off.
type ClassifierConfig struct {
	ERC20Threshold   int
	ERC721Threshold  int
	ERC1155Threshold int
	ERC721Loose      bool // use the 8-entry ERC-721 reference set
}

// StrictClassifierConfig requires a full ERC-20 match, 5 of 7 for ERC-721
// and 4 of 6 for ERC-1155.
func StrictClassifierConfig() ClassifierConfig {
	return ClassifierConfig{ERC20Threshold: 6, ERC721Threshold: 5, ERC1155Threshold: 4}
}

// LooseClassifierConfig is the reference-function variant: 4 of 6 for
// ERC-20, 4 of 8 for ERC-721, 4 of 6 for ERC-1155.
func LooseClassifierConfig() ClassifierConfig {
	return ClassifierConfig{ERC20Threshold: 4, ERC721Threshold: 4, ERC1155Threshold: 4, ERC721Loose: true}
}

// ClassifierConfigForMode maps a config string to a variant, defaulting to
// strict for anything unrecognized.
func ClassifierConfigForMode(mode string) ClassifierConfig {
	if mode == "loose" {
		return LooseClassifierConfig()
	}
	return StrictClassifierConfig()
}

// StandardClassifier matches extracted selector sets against the reference
// sets. Ties are not broken: a contract may satisfy several standards at
// once; DetectedType only picks one for display (ERC20 > ERC721 > ERC1155).
type StandardClassifier struct {
	cfg ClassifierConfig
}

// NewStandardClassifier builds a classifier for the given variant.
func NewStandardClassifier(cfg ClassifierConfig) *StandardClassifier {
	return &StandardClassifier{cfg: cfg}
}

// Classify evaluates the extracted selectors against each reference set.
func (c *StandardClassifier) Classify(selectors []string) entity.StandardDetection {
	present := make(map[string]struct{}, len(selectors))
	for _, s := range selectors {
		present[s] = struct{}{}
	}

	erc721Ref := erc721Selectors
	if c.cfg.ERC721Loose {
		erc721Ref = erc721SelectorsLoose
	}

	erc20Hits := countHits(present, erc20Selectors)
	erc721Hits := countHits(present, erc721Ref)
	erc1155Hits := countHits(present, erc1155Selectors)

	detection := entity.StandardDetection{
		IsERC20:      erc20Hits >= c.cfg.ERC20Threshold,
		IsERC721:     erc721Hits >= c.cfg.ERC721Threshold,
		IsERC1155:    erc1155Hits >= c.cfg.ERC1155Threshold,
		DetectedType: entity.StandardUnknown,
		Selectors:    selectors,
	}

	switch {
	case detection.IsERC20:
		detection.DetectedType = entity.StandardERC20
	case detection.IsERC721:
		detection.DetectedType = entity.StandardERC721
	case detection.IsERC1155:
		detection.DetectedType = entity.StandardERC1155
	}

	totalRef := len(erc20Selectors) + len(erc721Ref) + len(erc1155Selectors)
	if totalRef > confidenceDivisorCap {
		totalRef = confidenceDivisorCap
	}
	distinctHits := countDistinctHits(present, erc20Selectors, erc721Ref, erc1155Selectors)
	detection.Confidence = int(math.Round(float64(distinctHits) / float64(totalRef) * 100))

	return detection
}

func countHits(present map[string]struct{}, ref []string) int {
	hits := 0
	for _, s := range ref {
		if _, ok := present[s]; ok {
			hits++
		}
	}
	return hits
}

func countDistinctHits(present map[string]struct{}, refs ...[]string) int {
	seen := make(map[string]struct{})
	for _, ref := range refs {
		for _, s := range ref {
			if _, ok := present[s]; !ok {
				continue
			}
			seen[s] = struct{}{}
		}
	}
	return len(seen)
}
