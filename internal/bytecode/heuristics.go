package bytecode

import (
	"strings"

	"token_verifier/internal/entity"
)

// minimalProxyFingerprint is the EIP-1167 delegate trampoline as it appears
// in deployed minimal-proxy bytecode.
const minimalProxyFingerprint = "363d3d373d3d3d363d73"

// Detector is one pattern-matching strategy over a contract snapshot.
// Detection rules are deliberately pluggable so they can be revised without
// touching orchestration logic.
type Detector interface {
	Detect(snapshot entity.ContractSnapshot, findings *entity.RiskFindings)
}

// Heuristics runs a detector chain over a snapshot and assembles the
// resulting risk findings.
type Heuristics struct {
	detectors []Detector
}

// NewHeuristics builds the default detector chain: source-text keywords when
// verified source is available, bytecode fingerprints otherwise.
func NewHeuristics() *Heuristics {
	return &Heuristics{detectors: []Detector{
		SourceTextDetector{},
		FingerprintDetector{},
	}}
}

// NewHeuristicsWithDetectors builds a chain from an explicit detector list.
func NewHeuristicsWithDetectors(detectors ...Detector) *Heuristics {
	return &Heuristics{detectors: detectors}
}

// Analyze runs every detector and finalizes the findings. Missing source
// text is itself recorded as a risk (unverified code). RiskCount is the
// plain length of the risk list.
func (h *Heuristics) Analyze(snapshot entity.ContractSnapshot) entity.RiskFindings {
	findings := entity.RiskFindings{}

	if snapshot.SourceText == "" {
		findings.UnverifiedCode = true
		findings.Risks = append(findings.Risks, "Contract source code is not verified")
	}

	for _, d := range h.detectors {
		d.Detect(snapshot, &findings)
	}

	findings.RiskCount = len(findings.Risks)
	return findings
}

// SourceTextDetector keyword-matches verified/decompiled source text. It is
// the preferred signal and does nothing when no source is available.
type SourceTextDetector struct{}

// Detect implements Detector.
func (SourceTextDetector) Detect(snapshot entity.ContractSnapshot, findings *entity.RiskFindings) {
	if snapshot.SourceText == "" {
		return
	}
	src := strings.ToLower(snapshot.SourceText)

	if strings.Contains(src, "selfdestruct") || strings.Contains(src, "suicide") {
		findings.HasSelfdestruct = true
		findings.Risks = append(findings.Risks, "Contract can self-destruct")
	}
	if strings.Contains(src, "mint(") || strings.Contains(src, "_mint") {
		findings.HasMinting = true
		findings.Risks = append(findings.Risks, "Contract can mint new tokens")
	}
	if strings.Contains(src, "pause") || strings.Contains(src, "_pause") {
		findings.IsPausable = true
		findings.Risks = append(findings.Risks, "Contract transfers can be paused")
	}
	if strings.Contains(src, "blacklist") || strings.Contains(src, "_blacklist") {
		findings.HasBlacklist = true
		findings.Risks = append(findings.Risks, "Contract can blacklist addresses")
	}
	if strings.Contains(src, "proxy") || strings.Contains(src, "delegatecall") {
		findings.ProxyPatterns = true
		findings.Risks = append(findings.Risks, "Contract uses proxy/delegatecall patterns")
	}
	if strings.Contains(src, "upgradeable") || strings.Contains(src, "uups") {
		findings.ProxyPatterns = true
		findings.Risks = append(findings.Risks, "Contract is upgradeable")
	}
}

// FingerprintDetector scans raw bytecode for fixed opcode fingerprints. It
// only runs when no source text was retrievable: source keywords are the
// stronger signal when present.
type FingerprintDetector struct{}

// Detect implements Detector.
func (FingerprintDetector) Detect(snapshot entity.ContractSnapshot, findings *entity.RiskFindings) {
	if snapshot.SourceText != "" || snapshot.RawBytecode == "" {
		return
	}

	scan := scanOpcodes(decode(snapshot.RawBytecode))

	if scan.hasSelfdestruct {
		findings.HasSelfdestruct = true
		findings.Risks = append(findings.Risks, "Bytecode contains a self-destruct path")
	}
	if scan.hasDelegateCall || HasMinimalProxyFingerprint(snapshot.RawBytecode) {
		findings.ProxyPatterns = true
		findings.Risks = append(findings.Risks, "Bytecode contains a delegatecall trampoline")
	}
	if scan.hasCreate2 {
		findings.Risks = append(findings.Risks, "Bytecode can deploy contracts via CREATE2")
	}
	if !scan.hasSstore {
		findings.Risks = append(findings.Risks, "Bytecode never writes storage; token state may be fake")
	}
}

// HasMinimalProxyFingerprint reports whether the bytecode carries the
// EIP-1167 minimal-proxy trampoline.
func HasMinimalProxyFingerprint(rawBytecode string) bool {
	cleaned := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(rawBytecode), "0x"))
	return strings.Contains(cleaned, minimalProxyFingerprint)
}

type opcodeScan struct {
	hasSelfdestruct bool
	hasDelegateCall bool
	hasCreate2      bool
	hasSstore       bool
}

// scanOpcodes walks the bytecode skipping PUSH operands, so that constants
// embedded in the code are not misread as opcodes.
func scanOpcodes(code []byte) opcodeScan {
	var scan opcodeScan
	for pc := 0; pc < len(code); pc++ {
		op := code[pc]
		switch {
		case op >= opPush1 && op <= opPush32:
			pc += int(op-opPush1) + 1
		case op == opSelfdestruct:
			scan.hasSelfdestruct = true
		case op == opDelegateCall:
			scan.hasDelegateCall = true
		case op == opCreate2:
			scan.hasCreate2 = true
		case op == opSstore:
			scan.hasSstore = true
		}
	}
	return scan
}
