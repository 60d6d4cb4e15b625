package audit

// Audit event actions. Each constant corresponds to one lifecycle hook
// and becomes the Action field of the audit event.
const (
	ActionRequestStarted        = "request.started"
	ActionRequestCompleted      = "request.completed"
	ActionRequestFailed         = "request.failed"
	ActionNotificationPublished = "notification.published"
	ActionShutdown              = "mediator.shutdown"
)

// Audit event categories group related actions.
const (
	CategoryRequest      = "mediate.request"
	CategoryNotification = "mediate.notification"
	CategoryLifecycle    = "mediate.lifecycle"
)

// Resource types used as the Resource field in audit events.
const (
	ResourceRequest      = "request"
	ResourceNotification = "notification"
	ResourceMediator     = "mediator"
)

// AllActions returns every action this hook can emit.
func AllActions() []string {
	return []string{
		ActionRequestStarted,
		ActionRequestCompleted,
		ActionRequestFailed,
		ActionNotificationPublished,
		ActionShutdown,
	}
}
