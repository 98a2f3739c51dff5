package instrument

import "context"

// CorrelationIDHeader is the HTTP header carrying the request correlation id.
const CorrelationIDHeader = "X-Correlation-ID"

type cidKey struct{}

// SetCorrelationID returns a context carrying the correlation id.
func SetCorrelationID(ctx context.Context, cID string) context.Context {
	return context.WithValue(ctx, cidKey{}, cID)
}

// GetCorrelationID returns the correlation id stored in ctx or an empty string.
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	cID, _ := ctx.Value(cidKey{}).(string)
	return cID
}
