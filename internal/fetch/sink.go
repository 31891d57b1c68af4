// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Sink persists a fetched document under a file name and returns where it
// was written.
type Sink interface {
	Write(ctx context.Context, name string, data []byte) (string, error)
}

// DirSink writes documents into a local directory. The directory must
// already exist; an existing file with the same name is overwritten.
type DirSink struct {
	Dir string
}

// Write writes data to Dir/name.
func (s DirSink) Write(_ context.Context, name string, data []byte) (string, error) {
	dest := filepath.Join(s.Dir, name)
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", &IOError{Path: dest, Err: err}
	}
	return dest, nil
}

// PutObjectAPI is the subset of the S3 client used by S3Sink.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads documents to an S3 bucket under a key prefix.
type S3Sink struct {
	Client PutObjectAPI
	Bucket string
	Prefix string
}

// Write uploads data to s3://Bucket/Prefix/name.
func (s S3Sink) Write(ctx context.Context, name string, data []byte) (string, error) {
	key := path.Join(s.Prefix, name)
	loc := "s3://" + s.Bucket + "/" + key
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/pdf"),
	})
	if err != nil {
		return "", &IOError{Path: loc, Err: err}
	}
	return loc, nil
}

// newS3Client builds an S3 client from the default AWS credential chain.
// Tests replace it.
var newS3Client = func(ctx context.Context) (PutObjectAPI, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// OpenSink returns the sink for a destination: an s3://bucket/prefix URL
// selects S3Sink, anything else is a local directory ("" means ".").
func OpenSink(ctx context.Context, destination string) (Sink, error) {
	if !strings.HasPrefix(destination, "s3://") {
		if destination == "" {
			destination = "."
		}
		return DirSink{Dir: destination}, nil
	}

	u, err := url.Parse(destination)
	if err != nil {
		return nil, fmt.Errorf("parsing destination %q: %w", destination, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("destination %q has no bucket", destination)
	}
	client, err := newS3Client(ctx)
	if err != nil {
		return nil, err
	}
	return S3Sink{
		Client: client,
		Bucket: u.Host,
		Prefix: strings.Trim(u.Path, "/"),
	}, nil
}
