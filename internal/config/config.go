// Package config provides functionality for managing configuration options
// for the server using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"
)

// Options holds the configuration values for the server.
type Options struct {
	// Address defines the server's listening address (ip:port).
	Address string `json:"address"`

	// CredentialsFile is the path to the JSON credential list.
	CredentialsFile string `json:"credentials_file"`

	// DatabaseDSN, when set, switches credential lookups to PostgreSQL.
	DatabaseDSN string `json:"database_dsn"`

	// JWTSecret signs session tokens. Sensitive: flag or JWT_SECRET env
	// only, never a source default.
	JWTSecret string `json:"-"`

	// TokenTTL is the session-token validity window.
	TokenTTL time.Duration `json:"-"`

	// CertFile and KeyFile enable TLS when both are set.
	CertFile string `json:"cert_file"`
	KeyFile  string `json:"key_file"`

	// Config is the path to the config file.
	Config string `json:"-"`
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Address, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.CredentialsFile, "creds", "credentials.json", "path to credential list")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.JWTSecret, "secret", "", "token signing secret")
	flag.DurationVar(&options.TokenTTL, "ttl", time.Hour, "session token lifetime")
	flag.StringVar(&options.CertFile, "cert", "", "path to server TLS certificate")
	flag.StringVar(&options.KeyFile, "key", "", "path to server TLS key")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Address = serverAddress
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		options.JWTSecret = secret
	}
	if credsFile := os.Getenv("CREDENTIALS_FILE"); credsFile != "" {
		options.CredentialsFile = credsFile
	}
	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		parsed, err := time.ParseDuration(ttl)
		if err != nil {
			log.Fatalf("error while parsing TOKEN_TTL: %v", err)
		}
		options.TokenTTL = parsed
	}

	return options
}
