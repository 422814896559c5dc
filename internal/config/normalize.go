package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeAPI(); err != nil {
		return err
	}
	c.normalizeAuth()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTwitch()
	c.normalizeStream()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeAPI() error {
	if value, ok := os.LookupEnv(environmentServerKey); ok && strings.TrimSpace(value) != "" {
		c.API.BaseURL = value
	}
	base, err := NormalizeBaseURL(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	c.API.BaseURL = base
	c.API.UserAgent = strings.TrimSpace(c.API.UserAgent)
	if c.API.UserAgent == "" {
		c.API.UserAgent = defaultUserAgent
	}
	return nil
}

// NormalizeBaseURL trims a backend address, adds an http scheme when missing,
// and drops any trailing slash, query, or fragment.
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = defaultBaseURL
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	parsed.RawQuery = ""
	parsed.Fragment = ""
	parsed.Path = strings.TrimRight(parsed.Path, "/")
	return parsed.String(), nil
}

func (c *Config) normalizeAuth() {
	c.Auth.Token = strings.TrimSpace(c.Auth.Token)
	if c.Auth.Token == "" {
		if value, ok := os.LookupEnv(environmentTokenKey); ok {
			c.Auth.Token = strings.TrimSpace(value)
		}
	}
	c.Auth.JWTSecret = strings.TrimSpace(c.Auth.JWTSecret)
	if c.Auth.JWTSecret == "" {
		if value, ok := os.LookupEnv(environmentJWTSecretKey); ok {
			c.Auth.JWTSecret = strings.TrimSpace(value)
		}
	}
	c.Auth.JWTSubject = strings.TrimSpace(c.Auth.JWTSubject)
	if c.Auth.JWTSubject == "" {
		c.Auth.JWTSubject = defaultJWTSubject
	}
	if c.Auth.JWTTTLSeconds <= 0 {
		c.Auth.JWTTTLSeconds = defaultJWTTTLSeconds
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if value, ok := os.LookupEnv(environmentStateDirKey); ok && strings.TrimSpace(value) != "" {
		c.Paths.StateDir = value
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir()
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTwitch() {
	c.Twitch.SearchMode = strings.ToLower(strings.TrimSpace(c.Twitch.SearchMode))
	if c.Twitch.SearchMode == "" {
		c.Twitch.SearchMode = defaultSearchMode
	}
}

func (c *Config) normalizeStream() {
	c.Stream.DefaultOutputFile = strings.TrimSpace(c.Stream.DefaultOutputFile)
	if c.Stream.DefaultOutputFile == "" {
		c.Stream.DefaultOutputFile = defaultOutputFile
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = defaultLogMaxSizeMB
	}
	if c.Logging.MaxBackups < 0 {
		c.Logging.MaxBackups = 0
	}
	if c.Logging.MaxAgeDays < 0 {
		c.Logging.MaxAgeDays = 0
	}
}
