package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store downloads model artifacts from Amazon S3 (or compatible APIs).
type S3Store struct {
	client     *s3.Client
	downloader *manager.Downloader
}

func NewS3Store(client *s3.Client) *S3Store {
	return &S3Store{
		client:     client,
		downloader: manager.NewDownloader(client),
	}
}

// FetchArtifacts downloads every object under prefix into destDir, flattening
// keys to their base name. Returns the local paths written.
func (s *S3Store) FetchArtifacts(ctx context.Context, bucket, prefix, destDir string) ([]string, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}

	objects, err := s.ListObjects(ctx, bucket, prefix)
	if err != nil {
		return nil, err
	}
	if len(objects) == 0 {
		return nil, fmt.Errorf("no artifacts under s3://%s/%s", bucket, strings.Trim(prefix, "/"))
	}

	var paths []string
	for _, obj := range objects {
		name := filepath.Base(obj.Key)
		if name == "." || name == "/" || strings.HasSuffix(obj.Key, "/") {
			continue
		}
		local := filepath.Join(destDir, name)

		f, err := os.Create(local)
		if err != nil {
			return nil, fmt.Errorf("create artifact file %s: %w", local, err)
		}
		_, err = s.downloader.Download(ctx, f, &s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(obj.Key),
		})
		closeErr := f.Close()
		if err != nil {
			return nil, fmt.Errorf("download %s: %w", obj.Key, err)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("close artifact file %s: %w", local, closeErr)
		}
		paths = append(paths, local)
	}
	return paths, nil
}

func (s *S3Store) ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	var objects []ObjectInfo
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	}
	if strings.TrimSpace(prefix) != "" {
		input.Prefix = aws.String(prefix)
	}

	for {
		output, err := s.client.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}

		for _, obj := range output.Contents {
			objects = append(objects, ObjectInfo{
				Key:          aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				LastModified: obj.LastModified,
			})
		}

		if !aws.ToBool(output.IsTruncated) || output.NextContinuationToken == nil {
			break
		}
		input.ContinuationToken = output.NextContinuationToken
	}

	return objects, nil
}

var _ Store = (*S3Store)(nil)
