package notifier

import (
	"fmt"

	"filesentry/internal/logger"
)

// AlertDispatcher formats one alert and pushes it through the injected
// mail transport. Transport failures are logged and returned; the
// caller treats them as non-fatal.
type AlertDispatcher struct {
	sender  MailSender
	subject string
	host    HostInfo
	bridge  *logger.Bridge
}

// NewAlertDispatcher wires the dispatcher to its transport. subject is
// the configured fragment spliced into the fixed subject format.
func NewAlertDispatcher(sender MailSender, subject string, host HostInfo, bridge *logger.Bridge) *AlertDispatcher {
	return &AlertDispatcher{
		sender:  sender,
		subject: subject,
		host:    host,
		bridge:  bridge,
	}
}

// Dispatch sends one alert, synchronously and single-shot.
func (d *AlertDispatcher) Dispatch(event AlertEvent) error {
	subject := FormatAlertSubject(d.subject, event.FiredAt)
	body := FormatAlertBody(event, d.host)

	if err := d.sender.Send(subject, body); err != nil {
		d.bridge.Error(fmt.Sprintf("alert mail send failed (alert %s): %v", event.ID, err))
		return err
	}

	d.bridge.Info(fmt.Sprintf("alert mail sent (alert %s, folder %s)", event.ID, event.FolderPath))
	return nil
}
