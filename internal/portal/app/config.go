package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/aussiebroadwan/portalgate/internal/portal/domain"
	"github.com/aussiebroadwan/portalgate/internal/portal/service"
)

type Config struct {
	Port                 int           `mapstructure:"PORT"`                  // HTTP server port (default: 8080)
	Env                  string        `mapstructure:"ENV"`                   // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        `mapstructure:"LOG_LEVEL"`             // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        `mapstructure:"LOG_FORMAT"`            // Log format (json, text) (default: json)
	DatabaseFile         string        `mapstructure:"DATABASE_FILE"`         // Path to SQLite database file (default: ./portal.db)
	PepperFile           string        `mapstructure:"PEPPER_FILE"`           // Pepper for password hashing, created when missing (default: ./pepper)
	AppKeyFile           string        `mapstructure:"APP_KEY_FILE"`          // Session cookie signing key, created when missing (default: ./app.key)
	SeedFile             string        `mapstructure:"SEED_FILE"`             // Optional: YAML/JSON seed loaded into an empty database
	ShutdownGracePeriod  time.Duration `mapstructure:"SHUTDOWN_GRACE_PERIOD"` // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration `mapstructure:"HOUSEKEEPING_INTERVAL"` // Stale session sweep interval (default: 15m)
	StaleSessionAfter    time.Duration `mapstructure:"STALE_SESSION_AFTER"`   // Idle time before an open session record is closed (default: 2h)

	SessionLifetime     time.Duration `mapstructure:"SESSION_LIFETIME"`      // Web session lifetime (default: 2h)
	SessionCookieName   string        `mapstructure:"SESSION_COOKIE_NAME"`   // (default: portal_session)
	SessionCookieSecure bool          `mapstructure:"SESSION_COOKIE_SECURE"` // Mark the cookie Secure (default: false)

	AdminPanelRoles []string `mapstructure:"ADMIN_PANEL_ROLES"` // Roles allowed on the admin portal (default: master_admin,sub_admin)

	RecaptchaSecret    string  `mapstructure:"RECAPTCHA_SECRET"`     // Optional: verification is skipped when empty
	RecaptchaVerifyURL string  `mapstructure:"RECAPTCHA_VERIFY_URL"` // (default: Google siteverify)
	RecaptchaMinScore  float64 `mapstructure:"RECAPTCHA_MIN_SCORE"`  // (default: 0.5)

	LoginMaxAttempts int           `mapstructure:"LOGIN_MAX_ATTEMPTS"` // Failed attempts before lockout (default: 5)
	LoginDecay       time.Duration `mapstructure:"LOGIN_DECAY"`        // Lockout window (default: 60s)

	TrackLoginGuards  []string `mapstructure:"TRACK_LOGIN_GUARDS"`  // Guards whose logins open session records
	TrackLogoutGuards []string `mapstructure:"TRACK_LOGOUT_GUARDS"` // Guards whose logouts close session records

	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"` // CIDRs or addresses allowed to set X-Forwarded-For (default: none)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 8080)
	v.SetDefault("ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("DATABASE_FILE", "portal.db")
	v.SetDefault("PEPPER_FILE", "pepper")
	v.SetDefault("APP_KEY_FILE", "app.key")
	v.SetDefault("SEED_FILE", "")
	v.SetDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second)
	v.SetDefault("HOUSEKEEPING_INTERVAL", service.DefaultHousekeepingInterval)
	v.SetDefault("STALE_SESSION_AFTER", service.DefaultStaleAfter)
	v.SetDefault("SESSION_LIFETIME", 2*time.Hour)
	v.SetDefault("SESSION_COOKIE_NAME", "portal_session")
	v.SetDefault("SESSION_COOKIE_SECURE", false)
	v.SetDefault("ADMIN_PANEL_ROLES", roleNames(service.DefaultAdminRoles))
	v.SetDefault("RECAPTCHA_SECRET", "")
	v.SetDefault("RECAPTCHA_VERIFY_URL", "https://www.google.com/recaptcha/api/siteverify")
	v.SetDefault("RECAPTCHA_MIN_SCORE", 0.5)
	v.SetDefault("LOGIN_MAX_ATTEMPTS", 5)
	v.SetDefault("LOGIN_DECAY", 60*time.Second)
	v.SetDefault("TRACK_LOGIN_GUARDS", service.DefaultLoginGuards)
	v.SetDefault("TRACK_LOGOUT_GUARDS", service.DefaultLogoutGuards)
	v.SetDefault("TRUSTED_PROXIES", []string{})
}

// LoadConfig reads the environment and an optional portal.yaml from the
// working directory or /etc/portalgate/. Environment values win.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetConfigName("portal")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/portalgate/")
	return loadConfig(v)
}

func loadConfig(v *viper.Viper) (Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.AdminPanelRoles = splitList(cfg.AdminPanelRoles)
	cfg.TrackLoginGuards = splitList(cfg.TrackLoginGuards)
	cfg.TrackLogoutGuards = splitList(cfg.TrackLogoutGuards)
	cfg.TrustedProxies = splitList(cfg.TrustedProxies)

	// An empty list means "not configured", not "track nothing".
	if len(cfg.TrackLoginGuards) == 0 {
		cfg.TrackLoginGuards = slices.Clone(service.DefaultLoginGuards)
	}
	if len(cfg.TrackLogoutGuards) == 0 {
		cfg.TrackLogoutGuards = slices.Clone(service.DefaultLogoutGuards)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.LoginMaxAttempts <= 0 {
		return fmt.Errorf("LOGIN_MAX_ATTEMPTS must be positive, got %d", c.LoginMaxAttempts)
	}
	if c.LoginDecay <= 0 {
		return fmt.Errorf("LOGIN_DECAY must be positive, got %s", c.LoginDecay)
	}
	if len(c.AdminPanelRoles) == 0 {
		return errors.New("ADMIN_PANEL_ROLES must not be empty")
	}
	return nil
}

// AdminRoles returns the admin allow-list as roles.
func (c Config) AdminRoles() []domain.Role {
	roles := make([]domain.Role, 0, len(c.AdminPanelRoles))
	for _, r := range c.AdminPanelRoles {
		roles = append(roles, domain.Role(r))
	}
	return roles
}

// splitList normalizes list values that may arrive as one comma separated
// string from the environment.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for part := range strings.SplitSeq(item, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part != "" && !slices.Contains(out, part) {
				out = append(out, part)
			}
		}
	}
	return out
}

func roleNames(roles []domain.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

// LoadSeedFile reads seed data from a YAML, JSON or TOML file.
func LoadSeedFile(path string) (service.SeedData, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return service.SeedData{}, fmt.Errorf("failed to read seed file: %w", err)
	}

	var data service.SeedData
	if err := v.Unmarshal(&data); err != nil {
		return service.SeedData{}, fmt.Errorf("failed to decode seed file: %w", err)
	}
	return data, nil
}
