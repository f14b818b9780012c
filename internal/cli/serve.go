package cli

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	server "github.com/tabletalk-hackathon/tabletalk/internal/adapters/http_server"
	"github.com/tabletalk-hackathon/tabletalk/internal/adapters/observability"
	"github.com/tabletalk-hackathon/tabletalk/internal/shared"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := shared.Load()
			if addr != "" {
				cfg.HTTPAddr = addr
			}
			observability.Serve()
			svc := buildServices(cfg)

			srv := server.New()
			reg := observability.InitRegistry()
			srv.Mount("/metrics", observability.MetricsHandler(reg))
			srv.MountHandlers(&server.Handlers{
				Discovery:      svc.discovery,
				Ranker:         svc.ranker,
				Orch:           svc.orch,
				DefaultRadiusM: cfg.RadiusM,
				DefaultLimit:   cfg.CandidateLimit,
			})

			httpSrv := &http.Server{
				Addr:              cfg.HTTPAddr,
				Handler:           srv.Mux(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				_ = httpSrv.Shutdown(shutdownCtx)
			}()

			log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from HTTP_ADDR)")
	return cmd
}
