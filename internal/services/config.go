package services

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/opendatateam/ucli/internal/lib"
	"github.com/opendatateam/ucli/internal/models"
)

// EnvPrefix is the prefix of every environment override (UDATA_URL, UDATA_TOKEN, ...)
const EnvPrefix = "UDATA"

// Config keys, shared with the cobra flag bindings
const (
	KeyURL      = "url"
	KeyToken    = "token"
	KeyVerbose  = "verbose"
	KeySSLCheck = "ssl_check"
	KeyLogFile  = "log_file"
)

// LoadConfig loads configuration from file and merges with CLI flags
// Priority order (highest to lowest):
//  1. CLI flags (via viper bindings)
//  2. Environment variables
//  3. Configuration file
//  4. Default values
func LoadConfig(v *viper.Viper, configFile string) (*models.ClientConfig, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("ucli")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/ucli")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	defaults := models.DefaultConfig()
	v.SetDefault(KeyURL, defaults.URL)
	v.SetDefault(KeySSLCheck, defaults.SSLCheck)
	v.SetDefault(KeyVerbose, false)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, lib.ErrInvalidInput("failed to read config file", err)
		}
	}

	// Build config manually from viper values
	config := models.ClientConfig{
		URL:      v.GetString(KeyURL),
		Token:    v.GetString(KeyToken),
		Verbose:  v.GetBool(KeyVerbose),
		SSLCheck: v.GetBool(KeySSLCheck),
		LogFile:  v.GetString(KeyLogFile),
	}

	if err := config.Validate(); err != nil {
		return nil, lib.ErrInvalidConfig(KeyURL, err.Error())
	}

	return &config, nil
}

// ConfigFileUsed returns the path of the config file that was loaded, if any
func ConfigFileUsed(v *viper.Viper) string {
	return v.ConfigFileUsed()
}

