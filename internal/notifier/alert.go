package notifier

import (
	"time"

	"github.com/google/uuid"
)

// AlertEvent is the ephemeral payload of one staleness alert. It is
// built at alert time, handed to the dispatcher, and discarded.
type AlertEvent struct {
	ID           string
	FiredAt      time.Time
	FolderPath   string
	Threshold    time.Duration
	Elapsed      time.Duration
	LastActivity time.Time
}

// NewAlertEvent builds an alert event with a fresh correlation ID.
func NewAlertEvent(folder string, threshold, elapsed time.Duration, lastActivity, firedAt time.Time) AlertEvent {
	return AlertEvent{
		ID:           uuid.New().String(),
		FiredAt:      firedAt,
		FolderPath:   folder,
		Threshold:    threshold,
		Elapsed:      elapsed,
		LastActivity: lastActivity,
	}
}
