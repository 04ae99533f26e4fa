package fsxs3

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3FileSystem implements fsx.FileSystem on top of an S3 bucket
type S3FileSystem struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3FileSystem creates an S3-backed filesystem scoped to bucket/prefix
func NewS3FileSystem(client *s3.Client, bucket, prefix string) *S3FileSystem {
	return &S3FileSystem{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

func (fs *S3FileSystem) Join(segments ...string) string {
	return strings.Join(segments, "/")
}

func (fs *S3FileSystem) key(path string) string {
	path = strings.TrimLeft(path, "/")
	if fs.prefix == "" {
		return path
	}
	return fs.prefix + "/" + path
}

func (fs *S3FileSystem) WriteFile(ctx context.Context, path string, data []byte) error {
	_, err := fs.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(fs.key(path)),
		Body:   bytes.NewReader(data),
	})
	return err
}

func (fs *S3FileSystem) ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error) {
	out, err := fs.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(fs.key(path)),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

func (fs *S3FileSystem) DeleteFile(ctx context.Context, path string) error {
	_, err := fs.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(fs.key(path)),
	})
	return err
}
