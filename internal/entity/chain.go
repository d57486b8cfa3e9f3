package entity

// ChainDefinition holds the configuration for a specific blockchain network.
// This structure is defined at the domain level to be used across application and infrastructure layers.
type ChainDefinition struct {
	ChainID          int64    `json:"chainId" yaml:"chainId"`
	Name             string   `json:"name" yaml:"name"`
	Identifier       string   `json:"identifier" yaml:"identifier"` // Unique network identifier (e.g. "ethereum", "bsc")
	NativeSymbol     string   `json:"nativeSymbol" yaml:"nativeSymbol"`
	PrimaryRPCURL    string   `json:"primaryRpcUrl" yaml:"primaryRpcUrl"`
	FallbackRPCURLs  []string `json:"fallbackRpcUrls" yaml:"fallbackRpcUrls"`
	ExplorerAPIURL   string   `json:"explorerApiUrl" yaml:"explorerApiUrl"`
	ExplorerAPIKey   string   `json:"explorerApiKey,omitempty" yaml:"explorerApiKey,omitempty"`
	RPCTimeoutMs     int64    `json:"rpcTimeoutMs" yaml:"rpcTimeoutMs"`
	BlockExplorerURL string   `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
}
