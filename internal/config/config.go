package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/p0wz/goalsniperai-sub000/internal/domain/market"
	"github.com/p0wz/goalsniperai-sub000/internal/platform/logging"
)

// Config stores runtime configuration for the analyst.
type Config struct {
	AppEnv                          string
	ServiceName                     string
	ServiceVersion                  string
	FlashscoreBaseURL               string
	FlashscoreAPIKey                string
	FlashscoreAPIHost               string
	FlashscoreTimeout               time.Duration
	FlashscoreMaxRetries            int
	FlashscoreRetryInitialDelay     time.Duration
	FlashscoreCircuitEnabled        bool
	FlashscoreCircuitFailureCount   int
	FlashscoreCircuitOpenTimeout    time.Duration
	FlashscoreCircuitHalfOpenMaxReq int
	FlashscoreCacheTTL              time.Duration
	AnalystDayOffset                int
	AnalystMatchLimit               int
	AnalystInterCallDelay           time.Duration
	AnalystMaxConsecutiveFailures   int
	AnalystLeagueFilter             bool
	AnalystMarkets                  []market.Key
	AnalystFetchOdds                bool
	AllowedLeaguesFile              string
	UptraceEnabled                  bool
	UptraceDSN                      string
	PyroscopeEnabled                bool
	PyroscopeServerAddress          string
	PyroscopeAppName                string
	PyroscopeAuthToken              string
	PyroscopeBasicAuthUser          string
	PyroscopeBasicAuthPassword      string
	PyroscopeUploadRate             time.Duration
	DiagnosticsEnabled              bool
	DiagnosticsAddr                 string
	LogLevel                        logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	diagnosticsEnabled, err := strconv.ParseBool(getEnv("DIAGNOSTICS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DIAGNOSTICS_ENABLED: %w", err)
	}
	diagnosticsAddr := strings.TrimSpace(getEnv("DIAGNOSTICS_ADDR", ":6060"))
	if diagnosticsEnabled && diagnosticsAddr == "" {
		return Config{}, fmt.Errorf("DIAGNOSTICS_ADDR is required when DIAGNOSTICS_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "goalsniper-analyst"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		FlashscoreBaseURL:          strings.TrimRight(getEnv("FLASHSCORE_BASE_URL", "https://flashscore4.p.rapidapi.com"), "/"),
		FlashscoreAPIKey:           strings.TrimSpace(getEnv("FLASHSCORE_API_KEY", getEnv("RAPIDAPI_KEY", ""))),
		FlashscoreAPIHost:          getEnv("FLASHSCORE_API_HOST", "flashscore4.p.rapidapi.com"),
		AllowedLeaguesFile:         strings.TrimSpace(getEnv("ALLOWED_LEAGUES_FILE", "")),
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAppName:           getEnv("PYROSCOPE_APP_NAME", "goalsniper-analyst"),
		PyroscopeAuthToken:         getEnv("PYROSCOPE_AUTH_TOKEN", ""),
		PyroscopeBasicAuthUser:     getEnv("PYROSCOPE_BASIC_AUTH_USER", ""),
		PyroscopeBasicAuthPassword: getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		DiagnosticsEnabled:         diagnosticsEnabled,
		DiagnosticsAddr:            diagnosticsAddr,
		LogLevel:                   logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
	}

	if err := loadFlashscore(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadAnalyst(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadFlashscore(cfg *Config) error {
	timeout, err := time.ParseDuration(getEnv("FLASHSCORE_TIMEOUT", "20s"))
	if err != nil {
		return fmt.Errorf("parse FLASHSCORE_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return fmt.Errorf("FLASHSCORE_TIMEOUT must be > 0")
	}

	maxRetries, err := getEnvAsInt("FLASHSCORE_MAX_RETRIES", 2)
	if err != nil {
		return fmt.Errorf("parse FLASHSCORE_MAX_RETRIES: %w", err)
	}
	if maxRetries < 0 {
		return fmt.Errorf("FLASHSCORE_MAX_RETRIES must be >= 0")
	}

	retryDelay, err := time.ParseDuration(getEnv("FLASHSCORE_RETRY_INITIAL_DELAY", "1s"))
	if err != nil {
		return fmt.Errorf("parse FLASHSCORE_RETRY_INITIAL_DELAY: %w", err)
	}
	if retryDelay <= 0 {
		return fmt.Errorf("FLASHSCORE_RETRY_INITIAL_DELAY must be > 0")
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("FLASHSCORE_CIRCUIT_ENABLED", "false"))
	if err != nil {
		return fmt.Errorf("parse FLASHSCORE_CIRCUIT_ENABLED: %w", err)
	}

	circuitFailureCount, err := getEnvAsInt("FLASHSCORE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return fmt.Errorf("parse FLASHSCORE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if circuitFailureCount < 1 {
		return fmt.Errorf("FLASHSCORE_CIRCUIT_FAILURE_COUNT must be >= 1")
	}

	circuitOpenTimeout, err := time.ParseDuration(getEnv("FLASHSCORE_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return fmt.Errorf("parse FLASHSCORE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if circuitOpenTimeout <= 0 {
		return fmt.Errorf("FLASHSCORE_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}

	circuitHalfOpenMaxReq, err := getEnvAsInt("FLASHSCORE_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return fmt.Errorf("parse FLASHSCORE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if circuitHalfOpenMaxReq < 1 {
		return fmt.Errorf("FLASHSCORE_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	cacheTTL, err := time.ParseDuration(getEnv("FLASHSCORE_CACHE_TTL", "10m"))
	if err != nil {
		return fmt.Errorf("parse FLASHSCORE_CACHE_TTL: %w", err)
	}
	if cacheTTL < 0 {
		return fmt.Errorf("FLASHSCORE_CACHE_TTL must be >= 0")
	}

	cfg.FlashscoreTimeout = timeout
	cfg.FlashscoreMaxRetries = maxRetries
	cfg.FlashscoreRetryInitialDelay = retryDelay
	cfg.FlashscoreCircuitEnabled = circuitEnabled
	cfg.FlashscoreCircuitFailureCount = circuitFailureCount
	cfg.FlashscoreCircuitOpenTimeout = circuitOpenTimeout
	cfg.FlashscoreCircuitHalfOpenMaxReq = circuitHalfOpenMaxReq
	cfg.FlashscoreCacheTTL = cacheTTL
	return nil
}

func loadAnalyst(cfg *Config) error {
	dayOffset, err := getEnvAsInt("ANALYST_DAY_OFFSET", 1)
	if err != nil {
		return fmt.Errorf("parse ANALYST_DAY_OFFSET: %w", err)
	}
	if dayOffset < 0 || dayOffset > 7 {
		return fmt.Errorf("ANALYST_DAY_OFFSET must be between 0 and 7")
	}

	matchLimit, err := getEnvAsInt("ANALYST_MATCH_LIMIT", 500)
	if err != nil {
		return fmt.Errorf("parse ANALYST_MATCH_LIMIT: %w", err)
	}
	if matchLimit < 1 {
		return fmt.Errorf("ANALYST_MATCH_LIMIT must be >= 1")
	}

	interCallDelay, err := time.ParseDuration(getEnv("ANALYST_INTER_CALL_DELAY", "800ms"))
	if err != nil {
		return fmt.Errorf("parse ANALYST_INTER_CALL_DELAY: %w", err)
	}
	if interCallDelay < 0 {
		return fmt.Errorf("ANALYST_INTER_CALL_DELAY must be >= 0")
	}

	maxFailures, err := getEnvAsInt("ANALYST_MAX_CONSECUTIVE_FAILURES", 3)
	if err != nil {
		return fmt.Errorf("parse ANALYST_MAX_CONSECUTIVE_FAILURES: %w", err)
	}
	if maxFailures < 1 {
		return fmt.Errorf("ANALYST_MAX_CONSECUTIVE_FAILURES must be >= 1")
	}

	leagueFilter, err := strconv.ParseBool(getEnv("ANALYST_LEAGUE_FILTER", "true"))
	if err != nil {
		return fmt.Errorf("parse ANALYST_LEAGUE_FILTER: %w", err)
	}

	markets, err := market.ParseKeys(getEnv("ANALYST_MARKETS", ""))
	if err != nil {
		return fmt.Errorf("parse ANALYST_MARKETS: %w", err)
	}

	fetchOdds, err := strconv.ParseBool(getEnv("ANALYST_FETCH_ODDS", "false"))
	if err != nil {
		return fmt.Errorf("parse ANALYST_FETCH_ODDS: %w", err)
	}

	cfg.AnalystDayOffset = dayOffset
	cfg.AnalystMatchLimit = matchLimit
	cfg.AnalystInterCallDelay = interCallDelay
	cfg.AnalystMaxConsecutiveFailures = maxFailures
	cfg.AnalystLeagueFilter = leagueFilter
	cfg.AnalystMarkets = markets
	cfg.AnalystFetchOdds = fetchOdds
	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
