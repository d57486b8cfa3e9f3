package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"token_verifier/internal/cache"
	"token_verifier/internal/entity"
	"token_verifier/internal/port"
)

// APIVerifyResponse defines the response structure for the verify endpoint.
type APIVerifyResponse struct {
	Data          *entity.VerificationResult `json:"data,omitempty"`
	StatusMessage string                     `json:"status_message"`
}

// gasPriceEntry is one chain's cached gas price.
type gasPriceEntry struct {
	ChainID   int64   `json:"chainId"`
	Chain     string  `json:"chain"`
	PriceGwei float64 `json:"priceGwei"`
}

// VerificationHandler handles HTTP requests for token verification.
type VerificationHandler struct {
	verificationSvc port.VerificationService
	gasPriceSvc     port.GasPriceService
	registry        port.ChainRegistry
	cache           *cache.VerificationCache
}

// NewVerificationHandler creates a new VerificationHandler.
func NewVerificationHandler(
	verificationSvc port.VerificationService,
	gasPriceSvc port.GasPriceService,
	registry port.ChainRegistry,
	verificationCache *cache.VerificationCache,
) *VerificationHandler {
	return &VerificationHandler{
		verificationSvc: verificationSvc,
		gasPriceSvc:     gasPriceSvc,
		registry:        registry,
		cache:           verificationCache,
	}
}

// VerifyHandler runs one verification request. Domain failures (malformed
// address, collaborator outages) still come back 200 with the decision in
// the envelope; only an unreadable request body is a 400.
func (h *VerificationHandler) VerifyHandler(c *gin.Context) {
	ctx := c.Request.Context()

	var req entity.VerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIVerifyResponse{
			StatusMessage: "Invalid request body: " + err.Error(),
		})
		return
	}

	result, err := h.verificationSvc.Verify(ctx, req)
	if err != nil {
		// The service contract reserves errors for request-shape problems;
		// treat anything else that leaks here the same way.
		c.JSON(http.StatusInternalServerError, APIVerifyResponse{
			StatusMessage: "Verification failed: " + err.Error(),
		})
		return
	}

	message := "Verification completed."
	if result.ChainAnalysis != nil && result.ChainAnalysis.Error != "" {
		message = "Verification completed with errors; see chainAnalysis.error."
	}
	c.JSON(http.StatusOK, APIVerifyResponse{Data: result, StatusMessage: message})
}

// GasPricesHandler returns the cached gas price per registered chain.
func (h *VerificationHandler) GasPricesHandler(c *gin.Context) {
	entries := make([]gasPriceEntry, 0)
	for _, def := range h.registry.All() {
		if gwei, ok := h.gasPriceSvc.Current(def.ChainID); ok {
			entries = append(entries, gasPriceEntry{
				ChainID:   def.ChainID,
				Chain:     def.Identifier,
				PriceGwei: gwei,
			})
		}
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}

// CacheStatsHandler reports verification cache effectiveness.
func (h *VerificationHandler) CacheStatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.cache.Stats()})
}

// CacheClearHandler drops every cached verification result.
func (h *VerificationHandler) CacheClearHandler(c *gin.Context) {
	h.cache.Clear()
	c.JSON(http.StatusOK, gin.H{"status_message": "Verification cache cleared."})
}
