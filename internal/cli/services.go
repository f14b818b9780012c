package cli

import (
	"github.com/rs/zerolog/log"

	"github.com/tabletalk-hackathon/tabletalk/internal/adapters/observability"
	"github.com/tabletalk-hackathon/tabletalk/internal/adapters/overpass"
	redisad "github.com/tabletalk-hackathon/tabletalk/internal/adapters/redis"
	"github.com/tabletalk-hackathon/tabletalk/internal/adapters/telephony"
	"github.com/tabletalk-hackathon/tabletalk/internal/app"
	"github.com/tabletalk-hackathon/tabletalk/internal/domain"
	"github.com/tabletalk-hackathon/tabletalk/internal/shared"
)

// services is the wired object graph shared by the CLI commands and the API
// server. Everything is constructed explicitly; there are no singletons
// beyond the global logger.
type services struct {
	sink      domain.EventSink
	discovery *app.DiscoveryService
	ranker    *app.Ranker
	orch      *app.Orchestrator
}

func buildServices(cfg shared.Config) *services {
	sink := observability.NewLogSink(log.Logger)

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	}

	source := overpass.New(cfg.OverpassBase, cfg.OverpassRPS)
	discovery := app.NewDiscoveryService(
		source, cache, sink, log.Logger,
		cfg.CacheTTL, cfg.Workers, app.StaticFallbackCandidates(),
	)

	orch := app.NewOrchestrator(buildBackend(cfg), sink, app.DefaultRand(), app.OrchestratorConfig{
		PollInterval:  cfg.PollInterval,
		PollTimeout:   cfg.PollTimeout,
		FallbackDelay: cfg.FallbackDelay,
		FromNumber:    cfg.FromNumber,
	}, log.Logger)

	return &services{
		sink:      sink,
		discovery: discovery,
		ranker:    app.NewRanker(sink),
		orch:      orch,
	}
}

func buildBackend(cfg shared.Config) domain.CallBackend {
	if cfg.TelephonyBase == "" || cfg.TelephonyKey == "" {
		log.Info().Msg("using simulated call backend")
		return telephony.NewSimulatedBackend(app.DefaultRand(), 2)
	}
	cl, err := telephony.New(cfg.TelephonyBase, cfg.TelephonyKey, cfg.TelephonyRPS)
	if err != nil {
		log.Warn().Err(err).Msg("telephony client init failed, using simulated backend")
		return telephony.NewSimulatedBackend(app.DefaultRand(), 2)
	}
	return cl
}
