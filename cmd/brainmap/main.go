package main

import (
	"fmt"
	"os"

	"brain-atlas/internal/catalog"
	"brain-atlas/internal/engineconfig"
	"brain-atlas/internal/env"
	"brain-atlas/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose     bool
	configPath  string
	catalogPath string
	envPath     string

	cfg = engineconfig.Default()
	cat = catalog.Default()
	log = logger.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "brainmap [asset]",
	Short: "Explore which brain network a point on a 3D brain mesh belongs to",
	Long: `brainmap renders a brain mesh (glTF/GLB or OBJ), assigns each mesh part to a
region of the catalog, and shows the region under the mouse.

Run without a subcommand to open the viewer on the configured asset.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Close()
	},
	RunE: runView,
}

// setup loads .env, the engine config and the catalog, and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	if err := env.Load(envPath); err != nil {
		return err
	}
	var (
		c      engineconfig.Config
		cfgErr error
	)
	if configPath == "" {
		c, cfgErr = engineconfig.Load()
	} else {
		c, cfgErr = engineconfig.LoadFrom(configPath)
	}
	c = engineconfig.ApplyEnv(c, os.Getenv)
	if catalogPath != "" {
		c.CatalogPath = catalogPath
	}
	cfg = c

	l, err := logger.New(logger.Options{Path: cfg.LogPath, Verbose: verbose, Console: cmd.ErrOrStderr()})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log = l
	if cfgErr != nil {
		log.Warn("using default engine config", zap.Error(cfgErr))
	}

	loaded, err := catalog.LoadOrDefault(cfg.CatalogPath)
	if err != nil {
		return err
	}
	cat = loaded
	log.Debug("catalog ready", zap.Int("regions", cat.Len()), zap.String("path", cfg.CatalogPath))
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "engine config file (default "+engineconfig.EngineConfigPath+")")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "region catalog YAML (default: built-in networks)")
	rootCmd.PersistentFlags().StringVar(&envPath, "env", ".env", "environment file")

	rootCmd.AddCommand(viewCmd, inspectCmd, resolveCmd, catalogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
