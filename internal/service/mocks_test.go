package service

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"token_verifier/internal/entity"
	"token_verifier/internal/port"
)

var (
	errRPCDown      = errors.New("rpc endpoint unavailable")
	errExplorerDown = errors.New("explorer unavailable")
)

// mockChainClient implements port.ChainClient for testing.
type mockChainClient struct {
	def     entity.ChainDefinition
	code    string
	codeErr error

	mu        sync.Mutex
	codeCalls int
}

func (m *mockChainClient) CodeAt(ctx context.Context, address string) (string, error) {
	m.mu.Lock()
	m.codeCalls++
	m.mu.Unlock()
	if m.codeErr != nil {
		return "", m.codeErr
	}
	return m.code, nil
}

func (m *mockChainClient) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(20_000_000_000), nil
}

func (m *mockChainClient) Definition() entity.ChainDefinition { return m.def }

// mockClientProvider implements port.ChainClientProvider, handing out a fixed
// client per chain id.
type mockClientProvider struct {
	clients map[int64]*mockChainClient
	err     error
}

func (m *mockClientProvider) GetClient(def entity.ChainDefinition) (port.ChainClient, error) {
	if m.err != nil {
		return nil, m.err
	}
	if c, ok := m.clients[def.ChainID]; ok {
		return c, nil
	}
	return nil, errRPCDown
}

// mockRegistry implements port.ChainRegistry over a fixed definition list.
type mockRegistry struct {
	defs []entity.ChainDefinition
}

func (m *mockRegistry) All() []entity.ChainDefinition { return m.defs }

func (m *mockRegistry) ByChainID(chainID int64) (entity.ChainDefinition, bool) {
	for _, def := range m.defs {
		if def.ChainID == chainID {
			return def, true
		}
	}
	return entity.ChainDefinition{}, false
}

// mockExplorer implements port.ExplorerClient with per-chain source data.
type mockExplorer struct {
	sources     map[int64]*port.ContractSource
	sourceErr   error
	holders     []entity.HolderRecord
	holdersErr  error
	creation    *port.CreationInfo
	creationErr error
}

func (m *mockExplorer) ContractSource(ctx context.Context, chain entity.ChainDefinition, address string) (*port.ContractSource, error) {
	if m.sourceErr != nil {
		return nil, m.sourceErr
	}
	if src, ok := m.sources[chain.ChainID]; ok {
		return src, nil
	}
	return nil, errExplorerDown
}

func (m *mockExplorer) TopHolders(ctx context.Context, chain entity.ChainDefinition, address string, limit int) ([]entity.HolderRecord, error) {
	if m.holdersErr != nil {
		return nil, m.holdersErr
	}
	return m.holders, nil
}

func (m *mockExplorer) CreationInfo(ctx context.Context, chain entity.ChainDefinition, address string) (*port.CreationInfo, error) {
	if m.creationErr != nil {
		return nil, m.creationErr
	}
	return m.creation, nil
}

// mockCrossChain implements port.CrossChainService returning a fixed result.
type mockCrossChain struct {
	info  *entity.CrossChainInfo
	err   error
	calls int
}

func (m *mockCrossChain) VerifyAcrossChains(ctx context.Context, address string, chainIDs []int64) (*entity.CrossChainInfo, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.info, nil
}
