package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tabletalk-hackathon/tabletalk/internal/shared"
)

func newBookCmd() *cobra.Command {
	var (
		lat, lon float64
		radius   int
		limit    int
	)
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Discover, rank and call restaurants until one confirms a table for 2 at 19:00",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := shared.Load()
			if radius <= 0 {
				radius = cfg.RadiusM
			}
			if limit <= 0 {
				limit = cfg.CandidateLimit
			}
			profile, err := loadProfileOrDefault()
			if err != nil {
				return err
			}
			svc := buildServices(cfg)

			// Ctrl-C aborts cleanly at the next suspension point; no call is
			// left half-orchestrated.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			found, err := svc.discovery.Discover(ctx, lat, lon, radius)
			if err != nil {
				return err
			}
			if len(found) == 0 {
				fmt.Println("No restaurants found nearby.")
				return nil
			}
			ranked := svc.ranker.Rank(found, profile)
			if len(ranked) > limit {
				ranked = ranked[:limit]
			}

			rec, err := svc.orch.AttemptBookings(ctx, ranked, profile.FirstName, profile.LastName)
			if err != nil {
				return err
			}
			if rec == nil {
				fmt.Println("No availability today. Try a different selection, or call again later.")
				return nil
			}
			fmt.Println(rec.Confirmation)
			fmt.Printf("%s, %s\n", rec.Candidate.Name, rec.Candidate.Address)
			return nil
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", defaultLat, "latitude")
	cmd.Flags().Float64Var(&lon, "lon", defaultLon, "longitude")
	cmd.Flags().IntVar(&radius, "radius", 0, "search radius in meters (default from config)")
	cmd.Flags().IntVar(&limit, "limit", 0, "max candidates to call (default from config)")
	return cmd
}
