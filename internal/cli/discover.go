package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tabletalk-hackathon/tabletalk/internal/shared"
)

// Demo location: Amsterdam Oost.
const (
	defaultLat = 52.3613333
	defaultLon = 4.9180833
)

func newDiscoverCmd() *cobra.Command {
	var (
		lat, lon float64
		radius   int
	)
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List nearby restaurants ranked against the preference profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := shared.Load()
			if radius <= 0 {
				radius = cfg.RadiusM
			}
			profile, err := loadProfileOrDefault()
			if err != nil {
				return err
			}
			svc := buildServices(cfg)

			found, err := svc.discovery.Discover(cmd.Context(), lat, lon, radius)
			if err != nil {
				return err
			}
			ranked := svc.ranker.Rank(found, profile)

			for i, c := range ranked {
				fmt.Printf("%2d. %-32s %-12s %-8s %.1f★ %.2fkm  %s\n",
					i+1, c.Name, c.Cuisine, c.PriceTier, c.Rating, c.DistanceKm, c.Phone)
			}
			if len(ranked) == 0 {
				fmt.Println("no restaurants found")
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", defaultLat, "latitude")
	cmd.Flags().Float64Var(&lon, "lon", defaultLon, "longitude")
	cmd.Flags().IntVar(&radius, "radius", 0, "search radius in meters (default from config)")
	return cmd
}
