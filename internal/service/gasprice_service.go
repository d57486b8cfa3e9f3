package service

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"token_verifier/internal/config"
	"token_verifier/internal/port"
	"token_verifier/pkg/metrics"
)

// gasPriceServiceImpl implements the GasPriceService interface. It keeps a
// TTL cache of per-chain gas prices refreshed by a background loop started
// from main.
type gasPriceServiceImpl struct {
	cfg            *config.Config
	registry       port.ChainRegistry
	clientProvider port.ChainClientProvider
	pricesCache    *gocache.Cache // key: chain id as string -> price in gwei (float64)
	logger         *zap.Logger
}

// NewGasPriceService creates a new instance of GasPriceService.
func NewGasPriceService(cfg *config.Config, registry port.ChainRegistry, clientProvider port.ChainClientProvider, logger *zap.Logger) port.GasPriceService {
	ttl := time.Duration(cfg.GasPrice.CacheTTLMinutes) * time.Minute
	return &gasPriceServiceImpl{
		cfg:            cfg,
		registry:       registry,
		clientProvider: clientProvider,
		pricesCache:    gocache.New(ttl, 10*time.Minute),
		logger:         logger.Named("GasPriceService"),
	}
}

// RefreshAll fetches the current gas price for every registered chain
// concurrently. A chain that fails to answer keeps its previous cached
// value until the TTL expires.
func (s *gasPriceServiceImpl) RefreshAll(ctx context.Context) error {
	chains := s.registry.All()
	s.logger.Debug("Refreshing gas prices", zap.Int("chainCount", len(chains)))

	var wg sync.WaitGroup
	for _, chain := range chains {
		def := chain // capture range variable
		wg.Add(1)
		go func() {
			defer wg.Done()

			chainClient, err := s.clientProvider.GetClient(def)
			if err != nil {
				s.logger.Warn("Skipping gas price refresh, chain unreachable",
					zap.String("chain", def.Name), zap.Error(err))
				return
			}

			fetchCtx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.GasPrice.FetchTimeoutMillis)*time.Millisecond)
			defer cancel()

			priceWei, err := chainClient.SuggestGasPrice(fetchCtx)
			if err != nil {
				s.logger.Warn("Failed to fetch gas price",
					zap.String("chain", def.Name), zap.Error(err))
				return
			}

			gwei := weiToGwei(priceWei)
			s.pricesCache.SetDefault(cacheKeyForChain(def.ChainID), gwei)
			metrics.SetGasPrice(def.Identifier, gwei)
			s.logger.Debug("Gas price refreshed",
				zap.String("chain", def.Name), zap.Float64("gwei", gwei))
		}()
	}
	wg.Wait()
	return ctx.Err()
}

// Current returns the cached gas price for a chain in gwei.
func (s *gasPriceServiceImpl) Current(chainID int64) (float64, bool) {
	raw, found := s.pricesCache.Get(cacheKeyForChain(chainID))
	if !found {
		return 0, false
	}
	return raw.(float64), true
}

// RunRefreshLoop blocks refreshing prices on the configured interval until
// ctx is cancelled. Intended to run in its own goroutine from main.
func (s *gasPriceServiceImpl) RunRefreshLoop(ctx context.Context) {
	interval := time.Duration(s.cfg.GasPrice.RefreshIntervalSec) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := s.RefreshAll(ctx); err != nil {
		s.logger.Warn("Initial gas price refresh incomplete", zap.Error(err))
	}
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Gas price refresh loop stopped")
			return
		case <-ticker.C:
			if err := s.RefreshAll(ctx); err != nil {
				s.logger.Warn("Gas price refresh incomplete", zap.Error(err))
			}
		}
	}
}

func cacheKeyForChain(chainID int64) string {
	return fmt.Sprintf("gas_%d", chainID)
}

func weiToGwei(wei *big.Int) float64 {
	gwei, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(1e9)).Float64()
	return gwei
}
