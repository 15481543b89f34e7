package repo

import "context"

// ContentRepo is the content-extraction interface
// Implemented over the Jina reader proxy
type ContentRepo interface {
	// Fetch retrieves readable page text for a URL, truncated to the
	// configured size. Fails with domain.ErrUnreachable on network errors
	// and domain.ErrEmptyContent when the proxy returns nothing usable.
	// One attempt only; the caller reports failures to the user.
	Fetch(ctx context.Context, url string) (string, error)
}
