package interceptors

import "context"

type contextKey struct{ name string }

var (
	userIDKey = contextKey{"user_id"}
	phoneKey  = contextKey{"phone_number"}
)

// WithIdentity returns a context carrying the user id and phone of a validated Permanent token.
func WithIdentity(ctx context.Context, userID, phone string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	ctx = context.WithValue(ctx, phoneKey, phone)
	return ctx
}

// GetUserID returns the user_id from context and true if set; otherwise "", false.
func GetUserID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(userIDKey).(string)
	return v, ok && v != ""
}

// GetPhoneNumber returns the phone number from context and true if set; otherwise "", false.
func GetPhoneNumber(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(phoneKey).(string)
	return v, ok && v != ""
}
