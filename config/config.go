package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath           = "."
	defaultIssuer         = "myapp/authservice"
	defaultAccessTTL      = 15 * time.Minute
	defaultRefreshTTL     = 7 * 24 * time.Hour
	defaultServiceTTL     = 5 * time.Minute
	defaultProfileTimeout = 2 * time.Second
	defaultCleanup        = 10 * time.Minute

	defaultMaxRequestBodySize = "100KB"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *PostgresConfig `json:"postgres" yaml:"postgres"`

	JWT *JWTConfig `json:"jwt" yaml:"jwt"`

	// ServiceKeys lists the API keys accepted for service access tokens.
	ServiceKeys []ServiceKey `json:"serviceKeys" yaml:"serviceKeys"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	ProfileService *ProfileServiceConfig `json:"profileService" yaml:"profileService"`

	Cleanup *CleanupConfig `json:"cleanup" yaml:"cleanup"`
}

// PostgresConfig holds the connection settings of the identity store.
type PostgresConfig struct {
	Host            string        `json:"host" yaml:"host"`
	Port            string        `json:"port" yaml:"port"`
	UserName        string        `json:"userName" yaml:"userName"`
	Password        string        `json:"password" yaml:"password"`
	Database        string        `json:"database" yaml:"database"`
	SSLMode         string        `json:"sslMode" yaml:"sslMode"`
	MaxOpenConns    int           `json:"maxOpenConns" yaml:"maxOpenConns"`
	MaxIdleConns    int           `json:"maxIdleConns" yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `json:"connMaxLifetime" yaml:"connMaxLifetime"`
	AutoMigrate     bool          `json:"autoMigrate" yaml:"autoMigrate"`
}

// DSN renders the libpq connection string.
func (p *PostgresConfig) DSN() string {
	sslMode := p.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return "host=" + p.Host +
		" port=" + p.Port +
		" user=" + p.UserName +
		" password=" + p.Password +
		" dbname=" + p.Database +
		" sslmode=" + sslMode
}

// JWTConfig defines token signing settings. Key material is PEM, given inline or by path.
type JWTConfig struct {
	Issuer         string        `json:"issuer" yaml:"issuer"`
	AccessTTL      time.Duration `json:"accessTtl" yaml:"accessTtl"`
	RefreshTTL     time.Duration `json:"refreshTtl" yaml:"refreshTtl"`
	ServiceTTL     time.Duration `json:"serviceTtl" yaml:"serviceTtl"`
	PrivateKey     string        `json:"privateKey" yaml:"privateKey"`
	PublicKey      string        `json:"publicKey" yaml:"publicKey"`
	PrivateKeyPath string        `json:"privateKeyPath" yaml:"privateKeyPath"`
	PublicKeyPath  string        `json:"publicKeyPath" yaml:"publicKeyPath"`
}

// ServiceKey maps an API key to the caller name placed in the token subject.
type ServiceKey struct {
	Name string `json:"name" yaml:"name"`
	Key  string `json:"key" yaml:"key"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost  int    `json:"bcryptCost" yaml:"bcryptCost"`
	DefaultRole string `json:"defaultRole" yaml:"defaultRole"`
}

// ProfileServiceConfig points at the remote profile service.
type ProfileServiceConfig struct {
	BaseURL    string           `json:"baseUrl" yaml:"baseUrl"`
	APIKey     string           `json:"apiKey" yaml:"apiKey"`
	Timeout    time.Duration    `json:"timeout" yaml:"timeout"`
	Resilience ResilienceConfig `json:"resilience" yaml:"resilience"`
}

// ResilienceConfig tunes retry and circuit breaking for outbound calls.
type ResilienceConfig struct {
	MaxAttempts          uint          `json:"maxAttempts" yaml:"maxAttempts"`
	InitialBackoff       time.Duration `json:"initialBackoff" yaml:"initialBackoff"`
	MaxBackoff           time.Duration `json:"maxBackoff" yaml:"maxBackoff"`
	Multiplier           float64       `json:"multiplier" yaml:"multiplier"`
	FailureRateThreshold float64       `json:"failureRateThreshold" yaml:"failureRateThreshold"`
	MinimumRequests      uint32        `json:"minimumRequests" yaml:"minimumRequests"`
	Window               time.Duration `json:"window" yaml:"window"`
	OpenTimeout          time.Duration `json:"openTimeout" yaml:"openTimeout"`
	HalfOpenMaxRequests  uint32        `json:"halfOpenMaxRequests" yaml:"halfOpenMaxRequests"`
}

// CleanupConfig schedules the expired refresh token sweep.
type CleanupConfig struct {
	Interval time.Duration `json:"interval" yaml:"interval"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: POSTGRES_SSLMODE -> postgres.sslMode (not postgres.sslmode)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults fills optional settings and rejects unusable ones.
func (c *Config) applyDefaults() error {
	if c.Postgres == nil {
		return errors.New("postgres config is required")
	}
	if c.JWT == nil {
		return errors.New("jwt config is required")
	}
	if c.ProfileService == nil || strings.TrimSpace(c.ProfileService.BaseURL) == "" {
		return errors.New("profileService.baseUrl is required")
	}

	if strings.TrimSpace(c.HTTP.MaxRequestBodySize) == "" {
		c.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if c.JWT.Issuer == "" {
		c.JWT.Issuer = defaultIssuer
	}
	if c.JWT.AccessTTL <= 0 {
		c.JWT.AccessTTL = defaultAccessTTL
	}
	if c.JWT.RefreshTTL <= 0 {
		c.JWT.RefreshTTL = defaultRefreshTTL
	}
	if c.JWT.ServiceTTL <= 0 {
		c.JWT.ServiceTTL = defaultServiceTTL
	}

	if c.Auth == nil {
		c.Auth = &AuthConfig{}
	}
	if c.Auth.DefaultRole == "" {
		c.Auth.DefaultRole = "ROLE_USER"
	}

	if c.ProfileService.Timeout <= 0 {
		c.ProfileService.Timeout = defaultProfileTimeout
	}
	r := &c.ProfileService.Resilience
	if r.MaxAttempts == 0 {
		r.MaxAttempts = 3
	}
	if r.InitialBackoff <= 0 {
		r.InitialBackoff = 200 * time.Millisecond
	}
	if r.MaxBackoff <= 0 {
		r.MaxBackoff = 2 * time.Second
	}
	if r.Multiplier < 1 {
		r.Multiplier = 2
	}
	if r.FailureRateThreshold <= 0 || r.FailureRateThreshold > 1 {
		r.FailureRateThreshold = 0.5
	}
	if r.MinimumRequests == 0 {
		r.MinimumRequests = 5
	}
	if r.Window <= 0 {
		r.Window = time.Minute
	}
	if r.OpenTimeout <= 0 {
		r.OpenTimeout = 30 * time.Second
	}
	if r.HalfOpenMaxRequests == 0 {
		r.HalfOpenMaxRequests = 1
	}

	if c.Cleanup == nil {
		c.Cleanup = &CleanupConfig{}
	}
	if c.Cleanup.Interval <= 0 {
		c.Cleanup.Interval = defaultCleanup
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
