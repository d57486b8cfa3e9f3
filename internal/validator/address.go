// Package validator performs structural validation of contract addresses.
package validator

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"token_verifier/internal/entity"
)

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// AddressValidator validates contract address strings. Malformed input is
// reported through the result object, never through an error return.
type AddressValidator struct {
	// CheckMixedCaseChecksum enables the checksum comparison for addresses
	// that are neither all-lowercase nor all-uppercase. A mismatch is a
	// warning, not an error.
	CheckMixedCaseChecksum bool
}

// NewAddressValidator returns a validator with the checksum check enabled.
func NewAddressValidator() *AddressValidator {
	return &AddressValidator{CheckMixedCaseChecksum: true}
}

// Validate checks the structural form of an address and returns an itemized
// result. The canonical form is lowercase 0x + 40 hex digits.
func (v *AddressValidator) Validate(input string) entity.AddressValidation {
	result := entity.AddressValidation{Input: input}

	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		result.Errors = append(result.Errors, "address is empty")
		return result
	}
	if !strings.HasPrefix(trimmed, "0x") && !strings.HasPrefix(trimmed, "0X") {
		result.Errors = append(result.Errors, "address must start with 0x")
	}
	if len(trimmed) != 42 {
		result.Errors = append(result.Errors, fmt.Sprintf("address must be 42 characters, got %d", len(trimmed)))
	}
	if len(result.Errors) == 0 && !addressPattern.MatchString(trimmed) {
		result.Errors = append(result.Errors, "address contains non-hexadecimal characters")
	}
	if len(result.Errors) > 0 {
		return result
	}

	hexPart := trimmed[2:]
	if v.CheckMixedCaseChecksum && hasMixedCase(hexPart) {
		if checksummed := checksumVariant(hexPart); hexPart != checksummed {
			result.Warnings = append(result.Warnings, "address checksum variant mismatch; double-check the address")
		}
	}

	result.IsValid = true
	result.Address = "0x" + strings.ToLower(hexPart)
	return result
}

func hasMixedCase(hexPart string) bool {
	hasLower := strings.ContainsAny(hexPart, "abcdef")
	hasUpper := strings.ContainsAny(hexPart, "ABCDEF")
	return hasLower && hasUpper
}

// checksumVariant is the historical checksum transform carried over from the
// first generation of this engine: the case of each hex letter is driven by
// the corresponding nibble of the raw address bytes rather than by a hash of
// the lowercase address. It intentionally does not match EIP-55; replacing
// it is tracked as a product decision (see DESIGN.md), so keep the exact
// behavior until that lands.
func checksumVariant(hexPart string) string {
	raw, err := hex.DecodeString(strings.ToLower(hexPart))
	if err != nil {
		return hexPart
	}

	out := []byte(strings.ToLower(hexPart))
	for i := range out {
		var nibble byte
		if i%2 == 0 {
			nibble = raw[i/2] >> 4
		} else {
			nibble = raw[i/2] & 0x0f
		}
		if nibble >= 8 && out[i] >= 'a' && out[i] <= 'f' {
			out[i] = out[i] - 'a' + 'A'
		}
	}
	return string(out)
}
