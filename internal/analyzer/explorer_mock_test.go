package analyzer

import (
	"context"
	"errors"

	"token_verifier/internal/entity"
	"token_verifier/internal/port"
)

// mockExplorer implements port.ExplorerClient for testing.
type mockExplorer struct {
	source      *port.ContractSource
	sourceErr   error
	holders     []entity.HolderRecord
	holdersErr  error
	creation    *port.CreationInfo
	creationErr error

	holderLimitSeen int
}

var errExplorerDown = errors.New("explorer unavailable")

func (m *mockExplorer) ContractSource(ctx context.Context, chain entity.ChainDefinition, address string) (*port.ContractSource, error) {
	if m.sourceErr != nil {
		return nil, m.sourceErr
	}
	return m.source, nil
}

func (m *mockExplorer) TopHolders(ctx context.Context, chain entity.ChainDefinition, address string, limit int) ([]entity.HolderRecord, error) {
	m.holderLimitSeen = limit
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
