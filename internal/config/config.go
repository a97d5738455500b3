package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env      string `envconfig:"ENV" default:"production"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Course scanner API
	ScannerBaseURL   string        `envconfig:"SCANNER_BASE_URL" default:"https://course-scanner-backend.vercel.app"`
	FetchTimeout     time.Duration `envconfig:"FETCH_TIMEOUT" default:"10s"`
	RetryMaxAttempts int           `envconfig:"RETRY_MAX_ATTEMPTS" default:"3"`

	// Prometheus endpoint, off when empty
	MetricsAddr string `envconfig:"METRICS_ADDR"`

	// Contact form backend
	ContactURL string `envconfig:"CONTACT_URL" default:"https://backend-jet-nine.vercel.app/api/contact"`

	// SFTP drop for exported result sets
	SFTPHost                  string `envconfig:"SFTP_HOST"`
	SFTPPort                  int    `envconfig:"SFTP_PORT" default:"22"`
	SFTPUser                  string `envconfig:"SFTP_USER"`
	SFTPPass                  string `envconfig:"SFTP_PASS"`
	SFTPDir                   string `envconfig:"SFTP_DIR" default:"/"`
	SFTPInsecureIgnoreHostKey bool   `envconfig:"SFTP_INSECURE_IGNORE_HOST_KEY" default:"false"`
	SFTPKnownHosts            string `envconfig:"SFTP_KNOWN_HOSTS"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Development reports whether logs should be human-readable.
func (c *Config) Development() bool {
	return c.Env == "development"
}
