// Package cli implements listctl, the maintenance command line.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/Marga-Ghale/ora-lists/internal/config"
	"github.com/Marga-Ghale/ora-lists/internal/db"
	"github.com/Marga-Ghale/ora-lists/internal/repository"
	"github.com/Marga-Ghale/ora-lists/internal/repository/memstore"
	"github.com/spf13/cobra"
)

// Options configures the command tree. Zero fields get production defaults.
type Options struct {
	Config *config.Config
	Out    io.Writer

	// OpenRepos returns the repositories for cfg and a function releasing them.
	OpenRepos func(cfg *config.Config) (*repository.Repositories, func(), error)
}

func NewRootCommand(opts Options) *cobra.Command {
	if opts.Config == nil {
		opts.Config = config.Load()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.OpenRepos == nil {
		opts.OpenRepos = OpenRepositories
	}

	root := &cobra.Command{
		Use:           "listctl",
		Short:         "Maintenance tool for the shopping list service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(opts.Out)

	root.AddCommand(
		newMigrateCommand(opts),
		newPopulateCommand(opts),
		newSeedCommand(opts),
		newTokenCommand(opts),
	)
	return root
}

// OpenRepositories connects to the store selected by cfg.Store.
func OpenRepositories(cfg *config.Config) (*repository.Repositories, func(), error) {
	switch cfg.Store {
	case config.StoreMemory:
		return memstore.NewRepositories(), func() {}, nil
	case config.StorePostgres:
		pg, err := db.NewPostgresDB(cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRepositories(pg.DB), pg.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q (want %s or %s)", cfg.Store, config.StorePostgres, config.StoreMemory)
	}
}
