// Package bytecode extracts structural signals from raw contract bytecode
// and verified source text. All detection here is heuristic: results are
// detected candidates, not proof.
package bytecode

import (
	"encoding/hex"
	"strings"
)

// EVM opcodes the walkers care about.
const (
	opSstore       = 0x55
	opPush1        = 0x60
	opPush4        = 0x63
	opPush32       = 0x7f
	opDelegateCall = 0xf4
	opCreate2      = 0xf5
	opSelfdestruct = 0xff
)

// ExtractSelectors scans raw bytecode for the PUSH4 opcode immediately
// followed by 4 bytes, the pattern compilers emit when comparing msg.sig
// against a selector constant. Selectors are deduplicated and returned in
// first-seen order, rendered as 0x + 8 hex digits.
//
// Hand-rolled dispatch can produce false positives and negatives; callers
// must treat the result as candidates only.
func ExtractSelectors(rawBytecode string) []string {
	code := decode(rawBytecode)
	if len(code) == 0 {
		return nil
	}

	var selectors []string
	seen := make(map[string]struct{})

	for pc := 0; pc < len(code); pc++ {
		op := code[pc]
		if op < opPush1 || op > opPush32 {
			continue
		}
		size := int(op-opPush1) + 1
		if op == opPush4 && pc+4 < len(code) {
			sel := "0x" + hex.EncodeToString(code[pc+1:pc+5])
			if _, dup := seen[sel]; !dup {
				seen[sel] = struct{}{}
				selectors = append(selectors, sel)
			}
		}
		pc += size // skip push data so operands are not read as opcodes
	}

	return selectors
}

// decode normalizes a hex bytecode string (with or without 0x prefix) into
// raw bytes. Undecodable input yields nil, which downstream walkers treat
// as an empty contract.
func decode(rawBytecode string) []byte {
	cleaned := strings.TrimPrefix(strings.TrimSpace(rawBytecode), "0x")
	if cleaned == "" {
		return nil
	}
	if len(cleaned)%2 != 0 {
		cleaned = cleaned[:len(cleaned)-1]
	}
	code, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil
	}
	return code
}
