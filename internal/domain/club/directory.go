package club

import "context"

// Directory resolves club display names from an external member directory.
type Directory interface {
	ResolveName(ctx context.Context, clubID string) (string, bool, error)
}
