package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tabletalk-hackathon/tabletalk/internal/adapters/observability"
	"github.com/tabletalk-hackathon/tabletalk/internal/domain"
	"github.com/tabletalk-hackathon/tabletalk/internal/shared"
)

var (
	verbosity   string
	profilePath string
)

func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:   "tabletalk",
		Short: "Finds nearby restaurants and calls them until one confirms a table",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Logger = observability.NewLogger(os.Getenv("APP_ENV"))
			observability.SetVerbosity(verbosity)
		},
	}
	root.PersistentFlags().StringVar(&verbosity, "verbosity", "info", "log level: trace|debug|info|warn|error")
	root.PersistentFlags().StringVar(&profilePath, "profile", "", "path to a TOML preference profile")

	root.AddCommand(newDiscoverCmd())
	root.AddCommand(newBookCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func Execute() {
	if err := NewRoot().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadProfileOrDefault() (domain.UserProfile, error) {
	if profilePath == "" {
		return shared.DefaultProfile(), nil
	}
	return shared.LoadProfile(profilePath)
}
