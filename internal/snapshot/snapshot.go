// Package snapshot stores the last raw vendor payload so development runs
// can replay it instead of calling the network again.
package snapshot

import (
	"context"
	"errors"
)

// ErrNoSnapshot is returned by Load when no snapshot has been saved yet.
var ErrNoSnapshot = errors.New("snapshot: not found")

// Store holds one raw vendor payload.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, payload []byte) error
}
