package interfaces

import "context"

// NotifyClient is the push-notification collaborator. Reminders are keyed by
// obligation template id and repeat monthly; disabling a reminder cancels the
// schedule without touching the template.
type NotifyClient interface {
	Schedule(ctx context.Context, templateID, title, body string, day, hour, minute int) error
	Cancel(ctx context.Context, templateID string) error
}
