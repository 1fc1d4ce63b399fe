package config

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/souravmenon1999/injective-bridge/internal/types"
)

// MnemonicEnv is the hardened credential channel: the host process passes
// the recovery phrase (or a raw hex private key) via this variable instead
// of the request body.
const MnemonicEnv = "INJECTIVE_MNEMONIC_SECRET"

// Config holds the bridge configuration.
type Config struct {
	Lb            string    `mapstructure:"lb"`
	DefaultMarket string    `mapstructure:"default_market"`
	GasPrices     string    `mapstructure:"gas_prices"`
	TimeoutSecs   int       `mapstructure:"timeout_seconds"`
	Log           LogConfig `mapstructure:"log"`

	// credential is resolved from the environment and deliberately kept
	// unexported so it cannot leak through config dumps.
	credential string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// Load reads configuration from an optional file and the environment.
// A missing config file is not an error; defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetDefault("lb", "lb")
	v.SetDefault("default_market", "BTC/USDT PERP")
	v.SetDefault("gas_prices", "0.0005inj")
	v.SetDefault("timeout_seconds", 30)
	v.SetDefault("log.level", "info")

	if err := v.BindEnv("mnemonic", MnemonicEnv); err != nil {
		return nil, types.BridgeError{
			Code:    types.ErrConfigLoading,
			Message: "Failed to bind credential environment variable",
			Wrapped: err,
		}
	}
	if err := v.BindEnv("log.level", "BRIDGE_LOG_LEVEL"); err != nil {
		return nil, types.BridgeError{
			Code:    types.ErrConfigLoading,
			Message: "Failed to bind log level environment variable",
			Wrapped: err,
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, types.BridgeError{
				Code:    types.ErrConfigLoading,
				Message: "Failed to read config file",
				Wrapped: err,
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, types.BridgeError{
			Code:    types.ErrConfigLoading,
			Message: "Failed to unmarshal config",
			Wrapped: err,
		}
	}
	cfg.credential = v.GetString("mnemonic")

	return &cfg, nil
}

// Credential resolves the signing credential. The environment variable wins
// over the inline request field.
func (c *Config) Credential(inline string) string {
	if c.credential != "" {
		return c.credential
	}
	return inline
}

// Timeout returns the overall per-invocation deadline.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSecs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSecs) * time.Second
}
