package cloudwriter

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Writer accumulates the report in memory and uploads it as a single
// object when closed. Order reports are small; multipart upload would be
// overkill.
type S3Writer struct {
	client *s3.Client
	bucket string
	key    string
	buf    bytes.Buffer
}

type S3WriterFactory struct {
	client *s3.Client
}

func NewS3WriterFactory(region string) (*S3WriterFactory, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("cloudwriter: loading aws config: %w", err)
	}
	return &S3WriterFactory{client: s3.NewFromConfig(cfg)}, nil
}

func (f *S3WriterFactory) NewWriter(bucket, key string) (CloudWriter, error) {
	if bucket == "" {
		return nil, fmt.Errorf("cloudwriter: bucket name is required")
	}
	return &S3Writer{client: f.client, bucket: bucket, key: key}, nil
}

func (w *S3Writer) Write(data []byte) (int, error) {
	return w.buf.Write(data)
}

// Close uploads the buffered report. The content type follows the report
// file extension.
func (w *S3Writer) Close() error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(w.bucket),
		Key:    aws.String(w.key),
		Body:   bytes.NewReader(w.buf.Bytes()),
	}
	if ct := mime.TypeByExtension(filepath.Ext(w.key)); ct != "" {
		input.ContentType = aws.String(ct)
	}
	if _, err := w.client.PutObject(context.Background(), input); err != nil {
		return fmt.Errorf("cloudwriter: uploading s3://%s/%s: %w", w.bucket, w.key, err)
	}
	return nil
}
