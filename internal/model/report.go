package model

import "context"

// Reporter receives unanticipated failures before they are answered as a
// generic server error. Implementations must not panic; the request path
// depends on Report returning.
type Reporter interface {
	Report(ctx context.Context, err error)
}
