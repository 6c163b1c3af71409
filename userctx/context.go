package userctx

import "context"

// Context key type
type contextKey string

const managerNameKey contextKey = "manager_name"

// SetManagerName adds the authenticated manager's display name to the
// request context.
func SetManagerName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, managerNameKey, name)
}

// GetManagerName retrieves the manager's display name from the request
// context. Gates that carry no identity (shared secret) leave it unset.
func GetManagerName(ctx context.Context) string {
	name, ok := ctx.Value(managerNameKey).(string)
	if !ok {
		return "manager"
	}
	return name
}
