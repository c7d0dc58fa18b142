package config

import (
	"fmt"
	"net"
	"os"

	"github.com/spf13/viper"

	"github.com/vultisig/safe-api-plugin/api"
	"github.com/vultisig/safe-api-plugin/storage"
)

type Config struct {
	Server api.ServerConfig `mapstructure:"server" json:"server"`

	Plugin struct {
		Type          string                            `mapstructure:"type" json:"type,omitempty"`
		PluginConfigs map[string]map[string]interface{} `mapstructure:"plugin_configs" json:"plugin_configs,omitempty"`
	} `mapstructure:"plugin" json:"plugin,omitempty"`

	Redis   storage.RedisConfig `mapstructure:"redis" json:"redis,omitempty"`
	Datadog struct {
		Host string `mapstructure:"host" json:"host,omitempty"`
		Port string `mapstructure:"port" json:"port,omitempty"`
	} `mapstructure:"datadog" json:"datadog"`
	Worker struct {
		Concurrency int `mapstructure:"concurrency" json:"concurrency,omitempty"`
	} `mapstructure:"worker" json:"worker,omitempty"`
}

func (c *Config) DatadogAddr() string {
	return net.JoinHostPort(c.Datadog.Host, c.Datadog.Port)
}

// PluginConfig returns the raw settings of one plugin type, or nil when the
// server config carries none.
func (c *Config) PluginConfig(pluginType string) map[string]interface{} {
	return c.Plugin.PluginConfigs[pluginType]
}

func GetConfigure() (*Config, error) {
	configName := os.Getenv("VS_CONFIG_NAME")
	if configName == "" {
		configName = "config"
	}

	return ReadConfig(configName)
}

func ReadConfig(configName string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("server.port", 8080)
	v.SetDefault("plugin.type", "safe")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("datadog.host", "localhost")
	v.SetDefault("datadog.port", "8125")
	v.SetDefault("worker.concurrency", 10)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("fail to reading config file, %w", err)
	}
	var cfg Config
	err := v.Unmarshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &cfg, nil
}
