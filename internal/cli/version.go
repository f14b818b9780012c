package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// set via -ldflags at build time
var (
	Version   = "dev"
	CommitSHA = "none"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tabletalk %s (%s)\n", Version, CommitSHA)
		},
	}
}
