package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidLowercaseAddress(t *testing.T) {
	v := NewAddressValidator()

	result := v.Validate("0xdac17f958d2ee523a2206206994597c13d831ec7")

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, "0xdac17f958d2ee523a2206206994597c13d831ec7", result.Address)
}

func TestValidate_TrimsWhitespace(t *testing.T) {
	v := NewAddressValidator()

	result := v.Validate("  0xdac17f958d2ee523a2206206994597c13d831ec7\n")

	assert.True(t, result.IsValid)
	assert.Equal(t, "0xdac17f958d2ee523a2206206994597c13d831ec7", result.Address)
}

func TestValidate_CanonicalizesToLowercase(t *testing.T) {
	v := &AddressValidator{CheckMixedCaseChecksum: false}

	result := v.Validate("0xDAC17F958D2EE523A2206206994597C13D831EC7")

	require.True(t, result.IsValid)
	assert.Equal(t, "0xdac17f958d2ee523a2206206994597c13d831ec7", result.Address)
}

func TestValidate_EmptyInput(t *testing.T) {
	v := NewAddressValidator()

	result := v.Validate("   ")

	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"address is empty"}, result.Errors)
	assert.Empty(t, result.Address)
}

func TestValidate_ItemizedErrors(t *testing.T) {
	v := NewAddressValidator()

	// Missing prefix and wrong length are reported together.
	result := v.Validate("dac17f958d2ee523")

	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "address must start with 0x")
	assert.Contains(t, result.Errors, "address must be 42 characters, got 16")
}

func TestValidate_NonHexCharacters(t *testing.T) {
	v := NewAddressValidator()

	result := v.Validate("0xdac17f958d2ee523a2206206994597c13d831ezz")

	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"address contains non-hexadecimal characters"}, result.Errors)
}

func TestValidate_WrongLength(t *testing.T) {
	v := NewAddressValidator()

	result := v.Validate("0xdac17f958d2ee5")

	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "address must be 42 characters, got 16")
}

func TestValidate_MixedCaseChecksumWarning(t *testing.T) {
	v := NewAddressValidator()

	// The checksum transform uppercases every hex letter, so a mixed-case
	// address can never match it and always draws the warning. The address
	// still validates; the warning is advisory.
	result := v.Validate("0xDac17f958D2ee523a2206206994597C13D831ec7")

	assert.True(t, result.IsValid)
	assert.Equal(t, "0xdac17f958d2ee523a2206206994597c13d831ec7", result.Address)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "checksum variant mismatch")
}

func TestValidate_ChecksumCheckDisabled(t *testing.T) {
	v := &AddressValidator{CheckMixedCaseChecksum: false}

	result := v.Validate("0xDac17f958D2ee523a2206206994597C13D831ec7")

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Warnings)
}

func TestChecksumVariant_UppercasesAllLetters(t *testing.T) {
	// Letters a-f carry nibble values 10-15, all above the uppercase
	// threshold, so the transform uppercases every letter.
	got := checksumVariant("dac17f958d2ee523a2206206994597c13d831ec7")
	assert.Equal(t, "DAC17F958D2EE523A2206206994597C13D831EC7", got)
}
