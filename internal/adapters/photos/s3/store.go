// Package s3 guarda fotos en un bucket S3 (o compatible, p.ej. MinIO).
package s3

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

type Options struct {
	Bucket   string
	Prefix   string // opcional; p.ej. "animales/"
	Region   string
	Endpoint string // opcional; para S3 compatible
}

type Store struct {
	client *awss3.Client
	bucket string
	prefix string
}

func New(ctx context.Context, opts Options) (*Store, error) {
	if strings.TrimSpace(opts.Bucket) == "" {
		return nil, errors.New("s3 bucket required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	client := awss3.NewFromConfig(cfg, func(o *awss3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			// Los compatibles (MinIO) suelen requerir path style
			o.UsePathStyle = true
		}
	})

	return &Store{
		client: client,
		bucket: opts.Bucket,
		prefix: strings.TrimPrefix(opts.Prefix, "/"),
	}, nil
}

func (s *Store) Save(ctx context.Context, animalID string, data []byte, contentType string) (string, error) {
	if strings.TrimSpace(animalID) == "" {
		return "", errors.New("animal id required")
	}
	if len(data) == 0 {
		return "", errors.New("empty photo")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := s.prefix + animalID
	_, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return "s3://" + s.bucket + "/" + key, nil
}
