package notifier

import (
	"fmt"
	"strings"
	"time"

	"filesentry/internal/config"
)

const (
	subjectTimestampLayout = "2006-01-02 15:04"
	bodyTimestampLayout    = "2006-01-02 15:04:05"
)

// FormatAlertSubject builds the fixed-format subject line.
func FormatAlertSubject(subject string, firedAt time.Time) string {
	if subject == "" {
		subject = config.DefaultSubject
	}
	return fmt.Sprintf("[ALERT] %s - %s", subject, firedAt.Format(subjectTimestampLayout))
}

// FormatAlertBody builds the plain-text alert body.
func FormatAlertBody(event AlertEvent, host HostInfo) string {
	var sb strings.Builder

	sb.WriteString("No new files have arrived in the monitored folder.\n\n")
	sb.WriteString(fmt.Sprintf("Alert ID:                 %s\n", event.ID))
	sb.WriteString(fmt.Sprintf("Fired at:                 %s\n", event.FiredAt.Format(bodyTimestampLayout)))
	sb.WriteString(fmt.Sprintf("Watched folder:           %s\n", event.FolderPath))
	sb.WriteString(fmt.Sprintf("Staleness threshold:      %.1f minutes\n", event.Threshold.Minutes()))
	sb.WriteString(fmt.Sprintf("Time since last activity: %.1f minutes\n", event.Elapsed.Minutes()))
	sb.WriteString(fmt.Sprintf("Last activity at:         %s\n", event.LastActivity.Format(bodyTimestampLayout)))
	sb.WriteString(fmt.Sprintf("Host:                     %s\n", host.Label()))
	if host.MachineID != "" {
		sb.WriteString(fmt.Sprintf("Machine ID:               %s\n", host.MachineID))
	}
	sb.WriteString(fmt.Sprintf("Component:                %s v%s\n", config.AppName, config.AppVersion))

	return sb.String()
}
