// Package graphql defines the catalog's GraphQL schema and resolvers on top
// of the artemis engine, plus the HTTP and SSE transports that execute them.
package graphql

import (
	gql "github.com/botobag/artemis/graphql"

	usermodel "library-backend/internal/domains/user/model"
)

// RequestContext is the per-request state handed to every resolver through
// the executor's app context.
type RequestContext struct {
	// User is the authenticated user, or nil for anonymous requests.
	User *usermodel.User
}

// currentUser extracts the authenticated user from resolver info, or nil.
func currentUser(info gql.ResolveInfo) *usermodel.User {
	rc, ok := info.AppContext().(*RequestContext)
	if !ok || rc == nil {
		return nil
	}
	return rc.User
}
