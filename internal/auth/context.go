package auth

import "context"

type contextKey string

const profileIDKey contextKey = "profile_id"

// WithProfileID returns a copy of ctx carrying the signed-in caller's Profile id.
func WithProfileID(ctx context.Context, profileID string) context.Context {
	return context.WithValue(ctx, profileIDKey, profileID)
}

// ProfileID returns the signed-in caller's Profile id, if any.
func ProfileID(ctx context.Context) (string, bool) {
	id, _ := ctx.Value(profileIDKey).(string)
	return id, id != ""
}
