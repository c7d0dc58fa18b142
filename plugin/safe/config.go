package safe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/vultisig/safe-api-plugin/internal/chain"
	"github.com/vultisig/safe-api-plugin/internal/safeapi"
	"github.com/vultisig/safe-api-plugin/internal/sigutil"
)

const PLUGIN_TYPE = "safe"

type PluginConfig struct {
	Type          string `mapstructure:"type"`
	Version       string `mapstructure:"version"`
	TxServiceURL  string `mapstructure:"tx_service_url"`
	RpcURL        string `mapstructure:"rpc_url"`
	ChainID       int64  `mapstructure:"chain_id"`
	AddressPolicy string `mapstructure:"address_policy"`
	Signer        struct {
		PrivateKey string `mapstructure:"private_key"`
	} `mapstructure:"signer"`
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// Config is what a SafePlugin is built from.
type Config struct {
	TxServiceURL  string
	ChainAdapter  safeapi.ChainAdapter
	Signer        safeapi.Signer
	AddressPolicy AddressPolicy
	Timeout       time.Duration
}

func LoadPluginConfig(basePath string) (*PluginConfig, error) {
	v := viper.New()
	v.SetConfigName("safe")

	// Add config paths in order of precedence
	if basePath != "" {
		v.AddConfigPath(basePath)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/vultisig")

	// Enable environment variable overrides
	v.AutomaticEnv()
	v.SetEnvPrefix("SAFE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("type", PLUGIN_TYPE)
	v.SetDefault("address_policy", AddressPolicyChecksum)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config PluginConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// DecodePluginConfig reads the plugin settings embedded in the server
// config under plugin.plugin_configs.safe.
func DecodePluginConfig(rawConfig map[string]interface{}) (*PluginConfig, error) {
	config := PluginConfig{
		Type:          PLUGIN_TYPE,
		AddressPolicy: AddressPolicyChecksum,
	}
	if err := mapstructure.Decode(rawConfig, &config); err != nil {
		return nil, fmt.Errorf("failed to decode plugin config: %w", err)
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c PluginConfig) validate() error {
	if c.Type != PLUGIN_TYPE {
		return fmt.Errorf("invalid plugin type: %s", c.Type)
	}
	if c.TxServiceURL == "" {
		return errors.New("tx_service_url is required")
	}
	if c.RpcURL == "" && c.ChainID <= 0 {
		return errors.New("either rpc_url or chain_id is required")
	}
	if _, err := AddressPolicyByName(c.AddressPolicy); err != nil {
		return err
	}
	if c.TimeoutSeconds < 0 {
		return errors.New("timeout_seconds must not be negative")
	}
	return nil
}

// BuildConfig resolves the chain adapter, signer and address policy a
// PluginConfig names. The signer is optional: without it the delegate
// methods fail and everything else works.
func BuildConfig(ctx context.Context, pc PluginConfig) (Config, error) {
	cfg := Config{
		TxServiceURL: pc.TxServiceURL,
		Timeout:      time.Duration(pc.TimeoutSeconds) * time.Second,
	}

	policy, err := AddressPolicyByName(pc.AddressPolicy)
	if err != nil {
		return Config{}, err
	}
	cfg.AddressPolicy = policy

	if pc.RpcURL != "" {
		adapter, err := chain.NewEthAdapter(ctx, pc.RpcURL)
		if err != nil {
			return Config{}, err
		}
		cfg.ChainAdapter = adapter
	} else {
		cfg.ChainAdapter = chain.NewStaticAdapter(pc.ChainID)
	}

	if pc.Signer.PrivateKey != "" {
		signer, err := sigutil.NewKeySignerFromHex(pc.Signer.PrivateKey)
		if err != nil {
			return Config{}, err
		}
		cfg.Signer = signer
	}
	return cfg, nil
}

// ResolvePluginConfig prefers the settings embedded in the server config
// and falls back to safe.yaml.
func ResolvePluginConfig(rawConfig map[string]interface{}, basePath string) (*PluginConfig, error) {
	if rawConfig != nil {
		return DecodePluginConfig(rawConfig)
	}
	return LoadPluginConfig(basePath)
}
