package appconfig

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"
)

// Config holds all configuration details
type Config struct {
	Host     string         `yaml:"host"`
	BasePath string         `yaml:"basePath"`
	DocsPath string         `yaml:"docsPath"`
	Database DatabaseConfig `yaml:"database"`
	Pulsar   PulsarConfig   `yaml:"pulsar"`
	Auth     AuthConfig     `yaml:"auth"`
	CORS     CORSConfig     `yaml:"cors"`
}

// DatabaseConfig defines the database connection details
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	Source string `yaml:"source"`
}

// PulsarConfig defines the messaging system connection details. An empty URL
// disables event publishing.
type PulsarConfig struct {
	URL           string `yaml:"url"`
	TopicProducer string `yaml:"topicProducer"`
	TopicConsumer string `yaml:"topicConsumer"`
	Subscription  string `yaml:"subscription"`
}

// AuthConfig defines token issuance configuration
type AuthConfig struct {
	JWTSecret string `yaml:"jwtSecret"`
	TokenTTL  string `yaml:"tokenTTL"`
}

// TokenTTL parses the configured token lifetime, defaulting to seven days.
func (a AuthConfig) TokenTTLOrDefault() time.Duration {
	if a.TokenTTL == "" {
		return 7 * 24 * time.Hour
	}
	d, err := time.ParseDuration(a.TokenTTL)
	if err != nil {
		log.Warn().Str("tokenTTL", a.TokenTTL).Msg("invalid token TTL, using default")
		return 7 * 24 * time.Hour
	}
	return d
}

// CORSConfig lists the origins allowed to call the API from a browser
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// LoadConfig loads and parses the configuration from a given file path. The
// file is run through text/template first so values can reference environment
// variables, e.g. `source: "{{ .DATABASE_URL }}"`.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		err := errors.New("config file path is required")
		log.Error().Err(err).Msg("config file not provided")
		return nil, err
	}

	tmpl, err := template.ParseFiles(path)
	if err != nil {
		log.Error().Err(err).Msg("error parsing config file template")
		return nil, err
	}

	envVars := loadEnvVars()

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, envVars); err != nil {
		log.Error().Err(err).Msg("error executing config file template")
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(buf.Bytes(), &config); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal config YAML")
		return nil, err
	}

	return &config, nil
}

// loadEnvVars loads environment variables into a map
func loadEnvVars() map[string]string {
	envVars := make(map[string]string)
	for _, env := range os.Environ() {
		kv := strings.SplitN(env, "=", 2)
		if len(kv) == 2 {
			envVars[kv[0]] = kv[1]
		}
	}
	return envVars
}
