package cli

import (
	"fmt"

	"sproutlog/internal/app"
	"sproutlog/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// AppFactory builds the application container from configuration.
type AppFactory func(cfg *config.Config) (*app.App, error)

type rootOptions struct {
	v       *viper.Viper
	newApp  AppFactory
	envFile string
	cfg     *config.Config
}

// NewRootCommand returns the sproutlog command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(viper.New(), app.New)
}

func newRootCommand(v *viper.Viper, newApp AppFactory) *cobra.Command {
	opts := &rootOptions{v: v, newApp: newApp}

	rootCmd := &cobra.Command{
		Use:   "sproutlog",
		Short: "Personal garden tracker",
		Long: `SproutLog keeps track of your gardens, the plants growing in them and
the local weather on the day you signed up.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.envFile != "" {
				config.LoadDotEnv(opts.envFile)
			} else {
				config.LoadDotEnv()
			}
			cfg, err := config.Load(opts.v)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			opts.cfg = cfg
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.envFile, "env-file", "", "Path to a .env file (default ./.env)")
	flags.String("db-driver", "", "Database driver (postgres or sqlite)")
	flags.String("db-dsn", "", "Database connection string")
	_ = v.BindPFlag("DATABASE_DRIVER", flags.Lookup("db-driver"))
	_ = v.BindPFlag("DATABASE_DSN", flags.Lookup("db-dsn"))

	rootCmd.AddCommand(newServeCommand(opts))
	rootCmd.AddCommand(newOnboardCommand(opts))
	rootCmd.AddCommand(newSeedSpeciesCommand(opts))
	rootCmd.AddCommand(newEventsCommand(opts))
	return rootCmd
}

// open builds the container for a command that needs the database.
func (o *rootOptions) open() (*app.App, error) {
	a, err := o.newApp(o.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start sproutlog: %w", err)
	}
	return a, nil
}
