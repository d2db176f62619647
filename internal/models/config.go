package models

import (
	"fmt"
	"net/url"
)

// DefaultURL is the instance targeted when neither --url nor UDATA_URL is set
const DefaultURL = "http://localhost:7000"

// ClientConfig is the immutable connection configuration shared by every command
type ClientConfig struct {
	URL      string `yaml:"url" json:"url"`
	Token    string `yaml:"token" json:"token"`
	Verbose  bool   `yaml:"verbose" json:"verbose"`
	SSLCheck bool   `yaml:"ssl_check" json:"ssl_check"`
	LogFile  string `yaml:"log_file" json:"log_file"`
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() ClientConfig {
	return ClientConfig{
		URL:      DefaultURL,
		SSLCheck: true,
	}
}

// Validate checks that the instance URL is an absolute http(s) URL
func (c *ClientConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("url is required")
	}

	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url must use http or https, got %q", c.URL)
	}

	if u.Host == "" {
		return fmt.Errorf("url must include a host, got %q", c.URL)
	}

	return nil
}
