// Package audit is a Mediate lifecycle hook that bridges dispatch
// events to an immutable audit trail backend.
//
// Every request and notification lifecycle event emits a structured
// audit event through the [Recorder] interface. The hook assigns
// appropriate severity levels (info for normal operations, critical for
// failures) and rich metadata (request name, dispatch ID, tenant scope,
// elapsed time, errors).
//
// # Usage
//
//	audit.New(audit.RecorderFunc(func(ctx context.Context, evt *audit.Event) error {
//	    return backend.Write(ctx, evt.Action, evt.ResourceID, evt.Metadata)
//	}))
//
// # Selective filtering
//
//	audit.New(recorder,
//	    audit.WithActions(
//	        audit.ActionRequestFailed,
//	    ),
//	)
package audit
