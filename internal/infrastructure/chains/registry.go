package chains

import (
	"fmt"

	"token_verifier/internal/entity"
	"token_verifier/internal/port"
)

// Predefined chain definitions. Explorer API endpoints follow the
// etherscan-compatible v2 API shape; keys come from configuration.
var ( //nolint:gochecknoglobals // Global for definitions
	Ethereum = entity.ChainDefinition{
		ChainID:          1,
		Name:             "Ethereum Mainnet",
		Identifier:       "ethereum",
		NativeSymbol:     "ETH",
		PrimaryRPCURL:    "https://ethereum-rpc.publicnode.com",
		FallbackRPCURLs:  []string{"https://rpc.ankr.com/eth", "https://ethereum.publicnode.com"},
		ExplorerAPIURL:   "https://api.etherscan.io/api",
		BlockExplorerURL: "https://etherscan.io",
	}
	BSC = entity.ChainDefinition{
		ChainID:          56,
		Name:             "BNB Smart Chain",
		Identifier:       "bsc",
		NativeSymbol:     "BNB",
		PrimaryRPCURL:    "https://1rpc.io/bnb",
		FallbackRPCURLs:  []string{"https://bsc-dataseed2.binance.org/", "https://bsc.publicnode.com"},
		ExplorerAPIURL:   "https://api.bscscan.com/api",
		BlockExplorerURL: "https://bscscan.com",
	}
	Polygon = entity.ChainDefinition{
		ChainID:          137,
		Name:             "Polygon PoS",
		Identifier:       "polygon",
		NativeSymbol:     "MATIC",
		PrimaryRPCURL:    "https://polygon-rpc.com/",
		FallbackRPCURLs:  []string{"https://rpc.ankr.com/polygon", "https://polygon.publicnode.com"},
		ExplorerAPIURL:   "https://api.polygonscan.com/api",
		BlockExplorerURL: "https://polygonscan.com",
	}
	Arbitrum = entity.ChainDefinition{
		ChainID:          42161,
		Name:             "Arbitrum One",
		Identifier:       "arbitrum",
		NativeSymbol:     "ETH",
		PrimaryRPCURL:    "https://arb1.arbitrum.io/rpc",
		FallbackRPCURLs:  []string{"https://arbitrum.llamarpc.com", "https://arbitrum.publicnode.com"},
		ExplorerAPIURL:   "https://api.arbiscan.io/api",
		BlockExplorerURL: "https://arbiscan.io",
	}
	Avalanche = entity.ChainDefinition{
		ChainID:          43114,
		Name:             "Avalanche C-Chain",
		Identifier:       "avalanche",
		NativeSymbol:     "AVAX",
		PrimaryRPCURL:    "https://api.avax.network/ext/bc/C/rpc",
		FallbackRPCURLs:  []string{"https://avalanche.public-rpc.com", "https://rpc.ankr.com/avalanche"},
		ExplorerAPIURL:   "https://api.snowtrace.io/api",
		BlockExplorerURL: "https://snowtrace.io",
	}
	Base = entity.ChainDefinition{
		ChainID:          8453,
		Name:             "Base Mainnet",
		Identifier:       "base",
		NativeSymbol:     "ETH",
		PrimaryRPCURL:    "https://1rpc.io/base",
		FallbackRPCURLs:  []string{"https://base.publicnode.com", "https://base.llamarpc.com"},
		ExplorerAPIURL:   "https://api.basescan.org/api",
		BlockExplorerURL: "https://basescan.org",
	}
	Optimism = entity.ChainDefinition{
		ChainID:          10,
		Name:             "OP Mainnet",
		Identifier:       "optimism",
		NativeSymbol:     "ETH",
		PrimaryRPCURL:    "https://op-pokt.nodies.app",
		FallbackRPCURLs:  []string{"https://optimism.publicnode.com", "https://rpc.ankr.com/optimism"},
		ExplorerAPIURL:   "https://api-optimistic.etherscan.io/api",
		BlockExplorerURL: "https://optimistic.etherscan.io",
	}
)

// allKnownDefinitions is a helper to quickly access all hardcoded definitions.
var allKnownDefinitions = map[int64]entity.ChainDefinition{
	Ethereum.ChainID:  Ethereum,
	BSC.ChainID:       BSC,
	Polygon.ChainID:   Polygon,
	Arbitrum.ChainID:  Arbitrum,
	Avalanche.ChainID: Avalanche,
	Base.ChainID:      Base,
	Optimism.ChainID:  Optimism,
}

// Registry resolves chain definitions, preferring configured overrides over
// the built-in set.
type Registry struct {
	logger port.Logger
	defs   map[int64]entity.ChainDefinition
	order  []int64
}

// NewRegistry builds a registry from the built-in definitions merged with
// configured overrides. An override with a known ChainID replaces the
// built-in entry; unknown ChainIDs are added as new chains.
func NewRegistry(log port.Logger, overrides []entity.ChainDefinition, defaultRPCTimeoutMs int64) *Registry {
	defs := make(map[int64]entity.ChainDefinition, len(allKnownDefinitions))
	order := make([]int64, 0, len(allKnownDefinitions))
	for _, id := range []int64{Ethereum.ChainID, Optimism.ChainID, BSC.ChainID, Polygon.ChainID, Base.ChainID, Arbitrum.ChainID, Avalanche.ChainID} {
		defs[id] = allKnownDefinitions[id]
		order = append(order, id)
	}

	for _, ov := range overrides {
		if ov.ChainID == 0 {
			log.Warn("Skipping chain override without chainId", "name", ov.Name)
			continue
		}
		if _, known := defs[ov.ChainID]; !known {
			order = append(order, ov.ChainID)
		}
		defs[ov.ChainID] = ov
	}

	for id, def := range defs {
		if def.RPCTimeoutMs == 0 {
			def.RPCTimeoutMs = defaultRPCTimeoutMs
			defs[id] = def
		}
		log.Debug(fmt.Sprintf("  - Registered chain: %s (ID: %s, ChainID: %d)", def.Name, def.Identifier, def.ChainID))
	}

	return &Registry{logger: log, defs: defs, order: order}
}

// All returns every registered chain definition in registration order.
func (r *Registry) All() []entity.ChainDefinition {
	out := make([]entity.ChainDefinition, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.defs[id])
	}
	return out
}

// ByChainID returns the definition for a chain id and true when found.
func (r *Registry) ByChainID(chainID int64) (entity.ChainDefinition, bool) {
	def, ok := r.defs[chainID]
	return def, ok
}
