package config

// LogConfig defines configuration for the monitor log sink and the
// console diagnostic logger
type LogConfig struct {
	LogFile         string `json:"log_file,omitempty" yaml:"log_file,omitempty" validate:"required"`
	MaxLogSizeBytes int64  `json:"max_log_size_bytes,omitempty" yaml:"max_log_size_bytes,omitempty" validate:"omitempty,min=1"`
	LogLevel        string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,loglevel"`
}

// NewDefaultLogConfig creates default log configuration
func NewDefaultLogConfig() LogConfig {
	return LogConfig{
		LogFile:         DefaultLogFile,
		MaxLogSizeBytes: DefaultMaxLogSizeBytes,
		LogLevel:        DefaultLogLevel,
	}
}
