// Package blob selects the object store finished reports are published to.
package blob

import (
	"context"
	"fmt"

	"github.com/paljsingh/consultqueue/internal/blob/core"
	"github.com/paljsingh/consultqueue/internal/blob/fs"
	"github.com/paljsingh/consultqueue/internal/blob/memory"
	"github.com/paljsingh/consultqueue/internal/blob/s3"
)

// Options picks and parameterizes a driver. An empty Driver means filesystem.
type Options struct {
	Driver core.Driver
	FSRoot string
	S3     s3.Config
}

// Open constructs the store named by opts.Driver.
func Open(ctx context.Context, opts Options) (core.Store, error) {
	driver := opts.Driver
	if driver == "" {
		driver = core.DriverFilesystem
	}
	switch driver {
	case core.DriverFilesystem:
		return fs.New(opts.FSRoot)
	case core.DriverS3:
		return s3.New(ctx, opts.S3)
	case core.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}
