package memory

import "context"

// Runner satisfies store.Transactor for the in-memory backend. Map
// writes are not transactional, so fn runs directly and the services'
// checks-before-writes ordering keeps partial state out of the maps.
type Runner struct{}

func NewRunner() *Runner {
	return &Runner{}
}

func (r *Runner) Atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
