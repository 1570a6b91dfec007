package config

import (
	"time"
)

// MonitorConfig defines configuration for the staleness monitoring service
type MonitorConfig struct {
	MonitorFolder        string  `json:"monitor_folder" yaml:"monitor_folder" validate:"required"`
	AlertIntervalMinutes float64 `json:"alert_interval_minutes,omitempty" yaml:"alert_interval_minutes,omitempty" validate:"required,gt=0"`
	MonitorStartTime     string  `json:"monitor_start_time,omitempty" yaml:"monitor_start_time,omitempty" validate:"required,timeofday"`
	MonitorEndTime       string  `json:"monitor_end_time,omitempty" yaml:"monitor_end_time,omitempty" validate:"required,timeofday"`
	TickIntervalSeconds  int     `json:"tick_interval_seconds,omitempty" yaml:"tick_interval_seconds,omitempty" validate:"omitempty,min=1"`
	CreateMissingDir     bool    `json:"create_missing_dir" yaml:"create_missing_dir"`
}

// NewDefaultMonitorConfig creates default monitor configuration
func NewDefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		AlertIntervalMinutes: DefaultAlertIntervalMinutes,
		MonitorStartTime:     DefaultMonitorStartTime,
		MonitorEndTime:       DefaultMonitorEndTime,
		TickIntervalSeconds:  DefaultTickIntervalSeconds,
	}
}

// AlertThreshold returns the staleness threshold as a duration.
func (mc MonitorConfig) AlertThreshold() time.Duration {
	return time.Duration(mc.AlertIntervalMinutes * float64(time.Minute))
}

// TickInterval returns the monitor tick period.
func (mc MonitorConfig) TickInterval() time.Duration {
	if mc.TickIntervalSeconds <= 0 {
		return DefaultTickIntervalSeconds * time.Second
	}
	return time.Duration(mc.TickIntervalSeconds) * time.Second
}

// Window returns the parsed daily monitoring window bounds.
func (mc MonitorConfig) Window() (TimeOfDay, TimeOfDay, error) {
	start, err := ParseTimeOfDay(mc.MonitorStartTime)
	if err != nil {
		return TimeOfDay{}, TimeOfDay{}, err
	}
	end, err := ParseTimeOfDay(mc.MonitorEndTime)
	if err != nil {
		return TimeOfDay{}, TimeOfDay{}, err
	}
	return start, end, nil
}
