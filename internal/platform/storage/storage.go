// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storage hands out time-limited download links for stored files.

Documents, forms and report multimedia keep only an object key in PostgreSQL;
the bytes live in an S3-compatible bucket and clients download them directly
through a presigned GET URL.
*/
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/kanoon/kanoon/internal/platform/apperr"
)

// Presigner produces download links for object keys.
type Presigner interface {
	PresignGet(ctx context.Context, key string) (string, error)
}

// Link is the response body of every download endpoint.
type Link struct {
	URL string `json:"url"`
}

// LinkFor presigns key and wraps the URL for a response.
func LinkFor(ctx context.Context, presigner Presigner, key string) (*Link, error) {
	url, err := presigner.PresignGet(ctx, key)
	if err != nil {
		return nil, err
	}
	return &Link{URL: url}, nil
}

// Config selects the bucket. Endpoint is set for MinIO and other
// S3-compatible servers and switches to path-style addressing.
type Config struct {
	Bucket   string
	Region   string
	Endpoint string
	TTL      time.Duration

	// Credentials overrides the default AWS credential chain.
	Credentials *credentials.Credentials
}

// S3Presigner signs GET requests against one bucket.
type S3Presigner struct {
	bucket string
	ttl    time.Duration
	svc    *s3.S3
}

// New creates a presigner. With no bucket configured it returns [Unavailable].
func New(cfg Config) (Presigner, error) {
	if cfg.Bucket == "" {
		return Unavailable{}, nil
	}

	awsConfig := &aws.Config{
		Region:      aws.String(cfg.Region),
		Credentials: cfg.Credentials,
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("storage: create aws session: %w", err)
	}

	return &S3Presigner{bucket: cfg.Bucket, ttl: cfg.TTL, svc: s3.New(sess)}, nil
}

// PresignGet implements [Presigner].
func (presigner *S3Presigner) PresignGet(_ context.Context, key string) (string, error) {
	key = strings.TrimLeft(key, "/")
	if key == "" {
		return "", apperr.NotFound("File")
	}

	req, _ := presigner.svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(presigner.bucket),
		Key:    aws.String(key),
	})

	url, err := req.Presign(presigner.ttl)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("storage: presign %s: %w", key, err))
	}
	return url, nil
}

// Unavailable is the presigner used when no bucket is configured.
type Unavailable struct{}

// PresignGet always fails with 503.
func (Unavailable) PresignGet(context.Context, string) (string, error) {
	return "", apperr.ServiceUnavailable("File storage is not configured")
}
