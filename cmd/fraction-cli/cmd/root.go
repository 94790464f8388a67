package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/krazyTry/nft-fraction-go/config"
	nftfraction "github.com/krazyTry/nft-fraction-go/nft_fraction"
	"github.com/krazyTry/nft-fraction-go/runtime"
)

var ErrMissingFlag = errors.New("missing required flag")

var (
	configPath string
	dataDir    string

	cfg      *config.Config
	log      *zap.Logger
	store    *runtime.PebbleStore
	executor *runtime.Executor

	rootCmd = &cobra.Command{
		Use:           "fraction-cli",
		Short:         "Fractionalize NFTs against a local account store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.AddCommand(
		seedNftCmd,
		fractionalizeCmd,
		mintCmd,
		showCmd,
		fetchCmd,
	)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "override the store directory")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) (err error) {
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}
		if err := cfg.Apply(); err != nil {
			return err
		}
		log, err = cfg.Logger()
		if err != nil {
			return err
		}
		if cmd == fetchCmd {
			return nil
		}
		return openExecutor()
	}

	rootCmd.PersistentPostRunE = func(*cobra.Command, []string) error {
		if log != nil {
			_ = log.Sync()
		}
		if store == nil {
			return nil
		}
		return store.Close()
	}
}

func openExecutor() (err error) {
	store, err = runtime.OpenPebbleStore(filepath.Join(cfg.DataDir, "accounts"), nil)
	if err != nil {
		return err
	}
	registry := prometheus.NewRegistry()
	executor, err = runtime.NewExecutor(store, runtime.WithLogger(log), runtime.WithRegisterer(registry))
	if err != nil {
		return err
	}
	return nftfraction.RegisterPrograms(executor, log)
}

func requireFlag(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: --%s", ErrMissingFlag, name)
	}
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}
