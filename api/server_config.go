package api

type ServerConfig struct {
	Host           string `mapstructure:"host" json:"host,omitempty"`
	Port           int64  `mapstructure:"port" json:"port,omitempty"`
	BaseConfigPath string `mapstructure:"base_config_path" json:"base_config_path,omitempty"`
}
