package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"token_verifier/internal/analyzer"
	"token_verifier/internal/cache"
	"token_verifier/internal/client"
	"token_verifier/internal/config"
	"token_verifier/internal/entity"
	"token_verifier/internal/infrastructure/chains"
	applogger "token_verifier/internal/pkg/logger"
	"token_verifier/internal/scoring"
	"token_verifier/internal/service"
	"token_verifier/internal/validator"
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func execute() error {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "verifierctl",
		Short: "Token risk verification CLI",
		Long:  `verifierctl runs the token risk verification pipeline directly against chain RPCs and block explorers, without a running server.`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: built-in defaults)")

	rootCmd.AddCommand(createVerifyCmd(&cfgFile))
	rootCmd.AddCommand(createChainsCmd(&cfgFile))

	return rootCmd.Execute()
}

func createVerifyCmd(cfgFile *string) *cobra.Command {
	var chainID int64
	var crossChain bool
	var chainIDs []int64

	cmd := &cobra.Command{
		Use:   "verify <address>",
		Short: "Verify a token contract and print its risk report",
		Long: `Verify a token contract address: bytecode inspection, ownership and
holder-concentration analysis, risk scoring, and a final decision.

EXAMPLES:
  # Verify on Ethereum mainnet
  verifierctl verify 0xdac17f958d2ee523a2206206994597c13d831ec7

  # Verify on BSC
  verifierctl verify 0x... --chain 56

  # Compare deployments across the default chain set
  verifierctl verify 0x... --cross-chain

  # Compare across a custom chain set
  verifierctl verify 0x... --cross-chain --chains 1,56,137
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(*cfgFile, args[0], chainID, crossChain, chainIDs)
		},
	}

	cmd.Flags().Int64Var(&chainID, "chain", 0, "chain ID (default from config)")
	cmd.Flags().BoolVar(&crossChain, "cross-chain", false, "verify across multiple chains")
	cmd.Flags().Int64SliceVar(&chainIDs, "chains", nil, "chain IDs for cross-chain verification")

	return cmd
}

func createChainsCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "chains",
		Short: "List the supported chains",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgFile)
			if err != nil {
				return err
			}
			registry := chains.NewRegistry(applogger.NewSlogAdapter(), cfg.Chains, cfg.RpcClient.DefaultTimeoutMs)
			for _, def := range registry.All() {
				fmt.Printf("%-10d %-20s %s\n", def.ChainID, def.Name, def.PrimaryRPCURL)
			}
			return nil
		},
	}
}

func runVerify(cfgFile, address string, chainID int64, crossChain bool, chainIDs []int64) error {
	applogger.InitSlog("warn")

	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}

	// One-shot runs keep the service logs quiet; the report is the output.
	zapLogger := zap.NewNop()

	registry := chains.NewRegistry(applogger.NewSlogAdapter(), cfg.Chains, cfg.RpcClient.DefaultTimeoutMs)
	clientProvider := client.NewEVMClientProvider(
		time.Duration(cfg.RpcClient.ConnectionTimeoutMs)*time.Millisecond,
		time.Duration(cfg.RpcClient.DefaultTimeoutMs)*time.Millisecond,
		zapLogger,
	)
	explorerClient := client.NewExplorerClient(
		time.Duration(cfg.Explorer.RequestTimeoutMillis)*time.Millisecond,
		cfg.Explorer.RateLimitPerSecond,
		cfg.Explorer.BurstLimit,
		zapLogger,
	)

	chainAnalyzer := service.NewChainAnalyzer(
		cfg,
		registry,
		clientProvider,
		explorerClient,
		analyzer.NewOwnershipAnalyzer(explorerClient, zapLogger),
		analyzer.NewHolderConcentrationAnalyzer(explorerClient, zapLogger, cfg.Explorer.TopHolderLimit),
		scoring.Score,
		scoring.LevelForScore,
		zapLogger,
	)
	crossChainSvc := service.NewCrossChainService(cfg, chainAnalyzer, registry, zapLogger)
	verificationSvc := service.NewVerificationService(
		cfg,
		validator.NewAddressValidator(),
		chainAnalyzer,
		crossChainSvc,
		cache.New(time.Duration(cfg.Cache.TTLMinutes)*time.Minute),
		zapLogger,
	)

	result, err := verificationSvc.Verify(context.Background(), entity.VerificationRequest{
		TokenAddress:           address,
		ChainID:                chainID,
		CrossChainVerification: crossChain,
		ChainIDs:               chainIDs,
	})
	if err != nil {
		return err
	}

	fmt.Println(result.FormattedReport)
	return nil
}

func loadConfig(cfgFile string) (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.LoadConfig(cfgFile)
}
