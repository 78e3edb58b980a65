package llm

import "context"

type contextKey string

const (
	purposeKey contextKey = "llm_purpose"
	sessionKey contextKey = "llm_session"
)

// Purposes used when tagging requests for the event log.
const (
	PurposeQuestion = "question-gen"
	PurposeProbe    = "probe"
)

// WithPurpose attaches a purpose label to the context for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

// WithSessionID tags requests with the quiz session that issued them.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey, id)
}

// SessionIDFrom returns the quiz session ID, or "" outside a session.
func SessionIDFrom(ctx context.Context) string {
	v, _ := ctx.Value(sessionKey).(string)
	return v
}
