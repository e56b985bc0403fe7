package auth

import "context"

const RoleEmployee = "employee"

/* The authenticated caller of a request. A nil *Identity stands for an anonymous caller. */
type Identity struct {
	Username string
	Roles    []string
}

func (id *Identity) HasRole(role string) bool {
	if id == nil {
		return false
	}
	for _, r := range id.Roles {
		if r == role {
			return true
		}
	}
	return false
}

/* Returns the name recorded in audit fields, empty for anonymous callers. */
func Principal(id *Identity) string {
	if id == nil {
		return ""
	}
	return id.Username
}

type contextKey string

const identityContextKey contextKey = "CatalogIdentity"

func NewContext(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

/* Retrieves the caller identity stored by the authentication middleware, nil when the request is anonymous. */
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityContextKey).(*Identity)
	return id
}
