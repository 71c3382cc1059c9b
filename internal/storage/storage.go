package storage

import (
	"context"
	"time"
)

// ObjectInfo represents metadata for a remote file/object.
type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// ObjectStorage captures the minimal S3-compatible operations needed to
// archive exported report workbooks.
type ObjectStorage interface {
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
	DownloadObject(ctx context.Context, key string, destPath string) error
	UploadObject(ctx context.Context, key string, data []byte, contentType string) error
}
