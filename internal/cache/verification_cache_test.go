package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"token_verifier/internal/entity"
)

func sampleResult(requestID string) *entity.VerificationResult {
	return &entity.VerificationResult{
		RequestID: requestID,
		Timestamp: "2026-08-30T12:00:00Z",
		ChainAnalysis: &entity.TokenAnalysis{
			Address:      "0xdac17f958d2ee523a2206206994597c13d831ec7",
			ChainID:      1,
			IsContract:   true,
			OverallScore: 85,
			RiskLevel:    entity.RiskLevelLow,
		},
		Decision: entity.VerificationDecision{IsSafe: true, CanAutomate: true},
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t,
		"0xdac17f958d2ee523a2206206994597c13d831ec7:1:false",
		Key("0xdac17f958d2ee523a2206206994597c13d831ec7", 1, false))
	assert.Equal(t,
		"0xdac17f958d2ee523a2206206994597c13d831ec7:56:true",
		Key("0xdac17f958d2ee523a2206206994597c13d831ec7", 56, true))
}

func TestCache_MissOnEmpty(t *testing.T) {
	c := New(time.Minute)

	assert.Nil(t, c.Get("missing"))

	stats := c.Stats()
	assert.Equal(t, uint64(0), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
}

func TestCache_HitReturnsPayloadWithFreshRequestID(t *testing.T) {
	c := New(time.Minute)
	key := Key("0xdac17f958d2ee523a2206206994597c13d831ec7", 1, false)
	c.Set(key, sampleResult("original-id"))

	got := c.Get(key)

	require.NotNil(t, got)
	// The analysis payload is served verbatim; only the request identifier
	// is regenerated per call.
	assert.Equal(t, 85, got.ChainAnalysis.OverallScore)
	assert.Equal(t, "2026-08-30T12:00:00Z", got.Timestamp)
	assert.NotEqual(t, "original-id", got.RequestID)
	assert.NotEmpty(t, got.RequestID)

	second := c.Get(key)
	require.NotNil(t, second)
	assert.NotEqual(t, got.RequestID, second.RequestID)
}

func TestCache_ExpiredEntryIsEvictedLazily(t *testing.T) {
	c := New(10 * time.Millisecond)
	key := Key("0xdac17f958d2ee523a2206206994597c13d831ec7", 1, false)
	c.Set(key, sampleResult("id"))

	time.Sleep(25 * time.Millisecond)

	// Entry is still resident until a read touches it.
	assert.Equal(t, 1, c.Stats().Entries)
	assert.Nil(t, c.Get(key))
	assert.Equal(t, 0, c.Stats().Entries)
	assert.Equal(t, uint64(1), c.Stats().Misses)
}

func TestCache_SetReplacesExistingEntry(t *testing.T) {
	c := New(time.Minute)
	key := Key("0xdac17f958d2ee523a2206206994597c13d831ec7", 1, false)

	c.Set(key, sampleResult("first"))
	updated := sampleResult("second")
	updated.ChainAnalysis.OverallScore = 40
	c.Set(key, updated)

	got := c.Get(key)
	require.NotNil(t, got)
	assert.Equal(t, 40, got.ChainAnalysis.OverallScore)
	assert.Equal(t, 1, c.Stats().Entries)
}

func TestCache_KeysAreIndependent(t *testing.T) {
	c := New(time.Minute)
	base := "0xdac17f958d2ee523a2206206994597c13d831ec7"

	c.Set(Key(base, 1, false), sampleResult("a"))

	// Same address with the cross-chain flag set is a distinct entry.
	assert.Nil(t, c.Get(Key(base, 1, true)))
	assert.NotNil(t, c.Get(Key(base, 1, false)))
}

func TestCache_Clear(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", sampleResult("a"))
	c.Set("b", sampleResult("b"))

	c.Clear()

	assert.Equal(t, 0, c.Stats().Entries)
	assert.Nil(t, c.Get("a"))
}

func TestCache_StatsCounters(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", sampleResult("a"))

	c.Get("a")
	c.Get("a")
	c.Get("missing")

	stats := c.Stats()
	assert.Equal(t, uint64(2), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, 1, stats.Entries)
}
