package notifier

import (
	"fmt"
	"time"

	"github.com/denisbrodbeck/machineid"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/host"

	"filesentry/internal/config"
)

// HostInfo identifies the machine an alert originated from. Collection
// is best-effort: fields that cannot be determined stay empty.
type HostInfo struct {
	Hostname  string
	Platform  string
	Uptime    time.Duration
	MachineID string
}

// CollectHostInfo gathers the host identity once at startup.
func CollectHostInfo(logger zerolog.Logger) HostInfo {
	var info HostInfo

	if hi, err := host.Info(); err != nil {
		logger.Warn().Err(err).Msg("Could not collect host information")
	} else {
		info.Hostname = hi.Hostname
		info.Platform = fmt.Sprintf("%s %s", hi.Platform, hi.PlatformVersion)
		info.Uptime = time.Duration(hi.Uptime) * time.Second
	}

	if id, err := machineid.ProtectedID(config.AppName); err != nil {
		logger.Warn().Err(err).Msg("Could not derive machine ID")
	} else {
		info.MachineID = id
	}

	return info
}

// Label renders the host identity for the alert body.
func (h HostInfo) Label() string {
	if h.Hostname == "" {
		return "unknown host"
	}
	if h.Platform == "" {
		return h.Hostname
	}
	return fmt.Sprintf("%s (%s, up %s)", h.Hostname, h.Platform, h.Uptime.Truncate(time.Minute))
}
