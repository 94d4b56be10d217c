package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/cosmocash/internal/backend"
	"github.com/mmynk/cosmocash/internal/config"
	"github.com/mmynk/cosmocash/internal/household"
	"github.com/mmynk/cosmocash/internal/persist"
	"github.com/mmynk/cosmocash/internal/storage"
	"github.com/mmynk/cosmocash/pkg/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cosmocash",
	Short: "CosmoCash - household finance tracker",
	Long: `CosmoCash keeps the books for a shared household: roommates record shared and
personal expenses, split costs, track who has paid, save toward wishlist goals
and leave each other messages.

Run "cosmocash serve" for the HTTP API, or use the other commands to inspect
and export the household from the terminal.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./cosmocash.yaml)")
}

// loadConfig reads and validates the configuration and sets up logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logging.Setup(cfg.LogLevel)
	return cfg, nil
}

// session is a household opened for a one-shot command. Writes go straight
// to storage so nothing is lost when the process exits.
type session struct {
	store storage.Store
	h     *household.Household
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := backend.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return &session{
		store: store,
		h:     household.Open(ctx, store, persist.NewDirect(store)),
	}, nil
}

func (s *session) Close() error {
	return s.store.Close()
}
