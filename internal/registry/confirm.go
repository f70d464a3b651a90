package registry

import (
	"context"
	"sync"
)

type Remover interface {
	Remove(ctx context.Context, id string) error
}

// DeleteConfirmation stages a deletion so the store is only touched once the
// user confirms it.
type DeleteConfirmation struct {
	remover Remover

	mu      sync.Mutex
	pending string
}

func NewDeleteConfirmation(remover Remover) *DeleteConfirmation {
	return &DeleteConfirmation{remover: remover}
}

// Stage replaces any previously staged id. An empty id clears the stage.
func (c *DeleteConfirmation) Stage(id string) {
	c.mu.Lock()
	c.pending = id
	c.mu.Unlock()
}

func (c *DeleteConfirmation) Pending() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending, c.pending != ""
}

func (c *DeleteConfirmation) Cancel() {
	c.Stage("")
}

// Confirm removes the staged id and clears the stage. It returns the removed
// id, or "" when nothing was staged. On error the id stays staged.
func (c *DeleteConfirmation) Confirm(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == "" {
		return "", nil
	}

	id := c.pending
	if err := c.remover.Remove(ctx, id); err != nil {
		return "", err
	}
	c.pending = ""
	return id, nil
}
