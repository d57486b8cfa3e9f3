package client

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"token_verifier/internal/entity"
	"token_verifier/internal/port"
)

// evmClientProvider implements the port.ChainClientProvider interface.
// Connected clients are cached per chain to avoid reconnecting repeatedly.
type evmClientProvider struct {
	clients           map[int64]port.ChainClient
	mu                sync.Mutex
	logger            *zap.Logger
	connectionTimeout time.Duration
	rpcCallTimeout    time.Duration
}

// NewEVMClientProvider creates a new ChainClientProvider.
func NewEVMClientProvider(connectionTimeout, rpcCallTimeout time.Duration, logger *zap.Logger) port.ChainClientProvider {
	return &evmClientProvider{
		clients:           make(map[int64]port.ChainClient),
		logger:            logger.Named("EVMClientProvider"),
		connectionTimeout: connectionTimeout,
		rpcCallTimeout:    rpcCallTimeout,
	}
}

// GetClient retrieves (or lazily dials) the client for the given chain.
func (p *evmClientProvider) GetClient(def entity.ChainDefinition) (port.ChainClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if existing, ok := p.clients[def.ChainID]; ok {
		return existing, nil
	}

	p.logger.Debug("Dialing RPC client", zap.String("chain", def.Name), zap.Int64("chainId", def.ChainID))
	created, err := NewEVMClient(def, p.connectionTimeout, p.rpcCallTimeout)
	if err != nil {
		p.logger.Error("Failed to create RPC client", zap.String("chain", def.Name), zap.Error(err))
		return nil, err
	}

	p.clients[def.ChainID] = created
	return created, nil
}
