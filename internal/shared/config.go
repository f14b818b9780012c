package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	RedisAddr string
	RedisDB   int
	RedisPass string

	OverpassBase string
	OverpassRPS  int

	TelephonyBase string
	TelephonyKey  string
	TelephonyRPS  int
	FromNumber    string

	RadiusM        int
	Workers        int
	CandidateLimit int
	CacheTTL       time.Duration

	PollInterval  time.Duration
	PollTimeout   time.Duration
	FallbackDelay time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),

		RedisAddr: env("REDIS_ADDR", ""),
		RedisDB:   atoi("REDIS_DB", 0),
		RedisPass: env("REDIS_PASSWORD", ""),

		OverpassBase: env("OVERPASS_BASE_URL", "https://overpass-api.de/api/interpreter"),
		OverpassRPS:  atoi("OVERPASS_RPS", 2),

		TelephonyBase: env("TELEPHONY_BASE_URL", ""),
		TelephonyKey:  env("TELEPHONY_API_KEY", ""),
		TelephonyRPS:  atoi("TELEPHONY_RPS", 5),
		FromNumber:    env("TELEPHONY_FROM_NUMBER", "+31200000000"),

		RadiusM:        atoi("DISCOVERY_RADIUS_M", 500),
		Workers:        atoi("DISCOVERY_WORKERS", 3),
		CandidateLimit: atoi("CANDIDATE_LIMIT", 3),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,

		PollInterval:  time.Duration(atoi("CALL_POLL_INTERVAL_SECONDS", 2)) * time.Second,
		PollTimeout:   time.Duration(atoi("CALL_POLL_TIMEOUT_SECONDS", 60)) * time.Second,
		FallbackDelay: time.Duration(atoi("CALL_FALLBACK_DELAY_SECONDS", 2)) * time.Second,
	}
	if c.TelephonyKey == "" {
		log.Warn().Msg("TELEPHONY_API_KEY is empty, outbound calls will be simulated")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
