package storage

import (
	"context"
	"time"
)

type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified *time.Time
}

// Store retrieves pre-trained model artifacts from remote object storage so
// deployments can pull fresh models at startup instead of baking them into
// the image.
type Store interface {
	FetchArtifacts(ctx context.Context, bucket, prefix, destDir string) ([]string, error)
	ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error)
}
