package services

import "context"

// PersistentContext keeps the values of ctx but drops its cancellation, so
// work started for a request finishes even if the client goes away.
func PersistentContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return context.WithoutCancel(ctx)
}
