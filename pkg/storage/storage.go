package storage

import (
	"context"
	"io"
)

// FileStorage abstracts avatar upload destinations. Implementations return
// the path or URL under which the stored file is later served.
type FileStorage interface {
	Store(ctx context.Context, name string, reader io.Reader) (string, error)
}
