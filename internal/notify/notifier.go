// Package notify defines the notification provider boundary. The engine
// treats the provider as a black box that keeps at most one pending
// notification per tag, given the scheduler's cancel-before-create
// discipline.
package notify

import (
	"mihrab/internal/models"
	"mihrab/internal/providers"
)

type NotifierInterface interface {
	Schedule(n models.Notification) error
	Cancel(tag string) error
}

// LogNotifier records notification activity in the log. It stands in for a
// platform notification service on headless installs and in the daemon's
// default wiring.
type LogNotifier struct {
	logger providers.Logger
}

func NewLogNotifier(logger providers.Logger) NotifierInterface {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Schedule(notification models.Notification) error {
	if notification.Trigger.Recurring {
		n.logger.Infof(providers.TypeSched, "schedule tag=%s weekly %s %02d:%02d title=%q",
			notification.Tag, notification.Trigger.Weekday,
			notification.Trigger.Clock/60, notification.Trigger.Clock%60, notification.Title)
		return nil
	}
	n.logger.Infof(providers.TypeSched, "schedule tag=%s at=%s title=%q",
		notification.Tag, notification.Trigger.At.Format("2006-01-02T15:04:05Z07:00"), notification.Title)
	return nil
}

func (n *LogNotifier) Cancel(tag string) error {
	n.logger.Infof(providers.TypeSched, "cancel tag=%s", tag)
	return nil
}
