package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"faraid-engine/internal/config"
	"faraid-engine/internal/engine"
)

var (
	cfg *config.Config
	eng *engine.Engine
)

var rootCmd = &cobra.Command{
	Use:   "faraid",
	Short: "Islamic inheritance share computation",
	Long:  "Computes Faraid distributions: blocking, fixed Quranic shares and residuary distribution for a net estate.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		opts, err := cfg.Engine.Options()
		if err != nil {
			return fmt.Errorf("engine options: %w", err)
		}
		eng = engine.New(opts)

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
