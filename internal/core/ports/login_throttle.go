package ports

import "context"

// LoginThrottle limits repeated failed login attempts per username.
type LoginThrottle interface {
	// Blocked reports whether the username has exhausted its attempts.
	Blocked(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// ActivityRecorder accepts fire-and-forget "user was seen" notifications.
// Implementations must not block the caller.
type ActivityRecorder interface {
	Record(userID string)
}
