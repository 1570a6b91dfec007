package config

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	MonitorConfig MonitorConfig `json:"monitor_config,omitempty" yaml:"monitor_config,omitempty"`
	MailConfig    MailConfig    `json:"mail_config,omitempty" yaml:"mail_config,omitempty"`
	LogConfig     LogConfig     `json:"log_config,omitempty" yaml:"log_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		MonitorConfig: NewDefaultMonitorConfig(),
		MailConfig:    NewDefaultMailConfig(),
		LogConfig:     NewDefaultLogConfig(),
	}
}
