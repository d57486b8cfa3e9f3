package client

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"token_verifier/internal/entity"
	"token_verifier/internal/port"
	"token_verifier/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StatusError is returned when the explorer API answers with a non-200
// status or an application-level NOTOK response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("explorer API request failed with status %d: %s", e.StatusCode, e.Body)
}

// ErrNoExplorerEndpoint is returned for chains with no configured explorer
// API URL, so callers can tell "chain unsupported" from a transport failure.
var ErrNoExplorerEndpoint = errors.New("no explorer API endpoint configured for chain")

// explorerClientImpl is the etherscan-compatible implementation of
// port.ExplorerClient.
type explorerClientImpl struct {
	client  *fasthttp.Client
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewExplorerClient creates a new explorer client. All requests across all
// chains share one rate limiter; public explorer tiers throttle by caller,
// not by chain.
func NewExplorerClient(timeout time.Duration, ratePerSecond, burst int, logger *zap.Logger) port.ExplorerClient {
	return &explorerClientImpl{
		client:  &fasthttp.Client{},
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
		logger:  logger.Named("ExplorerClient"),
	}
}

// ContractSource fetches published source text and verification status.
func (c *explorerClientImpl) ContractSource(ctx context.Context, chain entity.ChainDefinition, address string) (*port.ContractSource, error) {
	body, err := c.call(ctx, chain, map[string]string{
		"module":  "contract",
		"action":  "getsourcecode",
		"address": address,
	})
	if err != nil {
		return nil, err
	}

	var envelope sourceCodeEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal getsourcecode response: %w", err)
	}
	if len(envelope.Result) == 0 {
		return &port.ContractSource{}, nil
	}

	record := envelope.Result[0]
	return &port.ContractSource{
		SourceCode:   record.SourceCode,
		ContractName: record.ContractName,
		IsVerified:   record.SourceCode != "",
	}, nil
}

// TopHolders fetches up to limit holder records and converts raw quantities
// into percentage-of-supply using the reported token supply.
func (c *explorerClientImpl) TopHolders(ctx context.Context, chain entity.ChainDefinition, address string, limit int) ([]entity.HolderRecord, error) {
	supplyBody, err := c.call(ctx, chain, map[string]string{
		"module":          "stats",
		"action":          "tokensupply",
		"contractaddress": address,
	})
	if err != nil {
		return nil, err
	}
	var supplyEnvelope tokenSupplyEnvelope
	if err := json.Unmarshal(supplyBody, &supplyEnvelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tokensupply response: %w", err)
	}
	supply, ok := new(big.Float).SetString(supplyEnvelope.Result)
	if !ok || supply.Sign() <= 0 {
		return nil, fmt.Errorf("explorer reported unusable token supply %q", supplyEnvelope.Result)
	}

	body, err := c.call(ctx, chain, map[string]string{
		"module":          "token",
		"action":          "tokenholderlist",
		"contractaddress": address,
		"page":            "1",
		"offset":          fmt.Sprintf("%d", limit),
	})
	if err != nil {
		return nil, err
	}
	var envelope holderListEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tokenholderlist response: %w", err)
	}

	holders := make([]entity.HolderRecord, 0, len(envelope.Result))
	for _, record := range envelope.Result {
		quantity, ok := new(big.Float).SetString(record.TokenHolderQuantity)
		if !ok {
			c.logger.Warn("Skipping holder with unparsable quantity",
				zap.String("holder", record.TokenHolderAddress),
				zap.String("quantity", record.TokenHolderQuantity))
			continue
		}
		pct, _ := new(big.Float).Quo(quantity, supply).Float64()
		holders = append(holders, entity.HolderRecord{
			Address: record.TokenHolderAddress,
			Percent: pct * 100,
		})
	}
	return holders, nil
}

// CreationInfo resolves the contract-creation transaction.
func (c *explorerClientImpl) CreationInfo(ctx context.Context, chain entity.ChainDefinition, address string) (*port.CreationInfo, error) {
	body, err := c.call(ctx, chain, map[string]string{
		"module":            "contract",
		"action":            "getcontractcreation",
		"contractaddresses": address,
	})
	if err != nil {
		return nil, err
	}

	var envelope creationEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal getcontractcreation response: %w", err)
	}
	if len(envelope.Result) == 0 {
		return nil, fmt.Errorf("explorer returned no creation record for %s", address)
	}

	record := envelope.Result[0]
	return &port.CreationInfo{
		CreatorAddress: record.ContractCreator,
		CreatorLabel:   record.CreatorLabel,
		TxHash:         record.TxHash,
	}, nil
}

// call performs one rate-limited GET against the chain's explorer API and
// returns the raw body after status checks.
func (c *explorerClientImpl) call(ctx context.Context, chain entity.ChainDefinition, params map[string]string) ([]byte, error) {
	if chain.ExplorerAPIURL == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoExplorerEndpoint, chain.Name)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait aborted: %w", err)
	}

	query := url.Values{}
	for key, value := range params {
		query.Set(key, value)
	}
	if chain.ExplorerAPIKey != "" {
		query.Set("apikey", chain.ExplorerAPIKey)
	}
	requestURL := chain.ExplorerAPIURL + "?" + query.Encode()

	c.logger.Debug("Requesting explorer API", zap.String("url", chain.ExplorerAPIURL), zap.String("action", params["action"]))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			metrics.IncCollaboratorError("explorer")
			c.logger.Error("Failed to execute explorer request", zap.String("action", params["action"]), zap.Error(err))
			return nil, fmt.Errorf("failed to execute explorer request: %w", err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			metrics.IncCollaboratorError("explorer")
			c.logger.Error("Failed to execute explorer request (with default timeout)", zap.String("action", params["action"]), zap.Error(err))
			return nil, fmt.Errorf("failed to execute explorer request with default timeout: %w", err)
		}
	}

	body := append([]byte(nil), resp.Body()...)
	if resp.StatusCode() != fasthttp.StatusOK {
		metrics.IncCollaboratorError("explorer")
		return nil, &StatusError{StatusCode: resp.StatusCode(), Body: string(body)}
	}

	var envelope explorerEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Status == "0" {
		return nil, &StatusError{StatusCode: resp.StatusCode(), Body: envelope.Message}
	}
	return body, nil
}
