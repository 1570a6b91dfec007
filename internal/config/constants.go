package config

const (
	// Application identity
	AppName    = "filesentry"
	AppVersion = "1.2.0"

	// Monitor Defaults
	DefaultAlertIntervalMinutes = 30.0
	DefaultMonitorStartTime     = "08:00"
	DefaultMonitorEndTime       = "18:00"
	DefaultTickIntervalSeconds  = 60

	// Mail Defaults
	DefaultSMTPPort = 587
	DefaultSubject  = "Folder activity alert"

	// Log Defaults
	DefaultLogFile         = "logs/filesentry.log"
	DefaultLogLevel        = "info"
	DefaultMaxLogSizeBytes = 2 * 1024 * 1024
)
