package shopify

import "fmt"

// AuthError means the stored credential is missing or unusable. It is
// returned before any network call is made.
type AuthError struct {
	Shop string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("shopify: no valid access token for shop %q", e.Shop)
}

// UpstreamError means the catalog API call failed or returned a response
// we could not use. Shop and cursor identify where in the traversal the
// run died.
type UpstreamError struct {
	Shop   string
	Cursor string
	Status int
	Reason string
	Err    error
}

func (e *UpstreamError) Error() string {
	cursor := e.Cursor
	if cursor == "" {
		cursor = "<first page>"
	}
	if e.Status != 0 {
		return fmt.Sprintf("shopify: products query failed for shop %q at cursor %s: status %d: %s", e.Shop, cursor, e.Status, e.Reason)
	}
	return fmt.Sprintf("shopify: products query failed for shop %q at cursor %s: %s", e.Shop, cursor, e.Reason)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
