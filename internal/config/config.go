package config

import (
	"context"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/common"
	runesconfig "github.com/gaze-network/runestone/modules/runes/config"
	"github.com/gaze-network/runestone/pkg/logger"
	"github.com/gaze-network/runestone/pkg/logger/slogx"
	"github.com/gaze-network/runestone/pkg/middleware/requestcontext"
	"github.com/gaze-network/runestone/pkg/middleware/requestlogger"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	isInit bool
	mu     sync.Mutex
	config = &Config{
		Logger: logger.Config{
			Output: "TEXT",
		},
		Network: common.NetworkMainnet,
		BitcoinNode: BitcoinNodeClient{
			User: "user",
			Pass: "pass",
		},
		HTTPServer: HTTPServerConfig{
			Port: 8080,
		},
	}
)

type Config struct {
	Logger      logger.Config     `mapstructure:"logger"`
	Network     common.Network    `mapstructure:"network"`
	BitcoinNode BitcoinNodeClient `mapstructure:"bitcoin_node"`
	HTTPServer  HTTPServerConfig  `mapstructure:"http_server"`
	Modules     Modules           `mapstructure:"modules"`
}

type BitcoinNodeClient struct {
	Host       string `mapstructure:"host"`
	User       string `mapstructure:"user"`
	Pass       string `mapstructure:"pass"`
	DisableTLS bool   `mapstructure:"disable_tls"`
}

type HTTPServerConfig struct {
	Port      int                               `mapstructure:"port"`
	Logger    requestlogger.Config              `mapstructure:"logger"`
	RequestIP requestcontext.WithClientIPConfig `mapstructure:"request_ip"`
}

type Modules struct {
	Runes runesconfig.Config `mapstructure:"runes"`
}

// Parse reads the configuration from configFile (or ./config.yaml) and environment variables.
// Environment variables use `_` in place of `.`, e.g. BITCOIN_NODE_HOST.
func Parse(configFile ...string) Config {
	mu.Lock()
	defer mu.Unlock()
	return *parse(configFile...)
}

func parse(configFile ...string) *Config {
	ctx := logger.WithContext(context.Background(), slogx.String("package", "config"))

	if len(configFile) > 0 && configFile[0] != "" {
		viper.SetConfigFile(configFile[0])
	} else {
		viper.AddConfigPath("./")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := viper.ReadInConfig(); err != nil {
		var errNotfound viper.ConfigFileNotFoundError
		if errors.As(err, &errNotfound) {
			logger.WarnContext(ctx, "Config file not found, use default config value", slogx.Error(err))
		} else {
			logger.PanicContext(ctx, "Invalid config file", slogx.Error(err))
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		logger.PanicContext(ctx, "Something went wrong, failed to unmarshal config", slogx.Error(err))
	}

	isInit = true
	return config
}

// Load returns the parsed configuration, parsing it with defaults on first use.
func Load() Config {
	mu.Lock()
	defer mu.Unlock()
	if !isInit {
		return *parse()
	}
	return *config
}

// BindPFlag binds a viper key to a cobra flag. The flag value overrides the config file.
func BindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		logger.Panic("Something went wrong, failed to bind flag for config", slogx.String("package", "config"), slogx.Error(err))
	}
}
