// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanoon/kanoon/internal/platform/apperr"
	"github.com/kanoon/kanoon/internal/platform/storage"
)

/*
TestPresignGet signs offline against a path-style endpoint.
*/
func TestPresignGet(t *testing.T) {
	presigner, err := storage.New(storage.Config{
		Bucket:      "library",
		Region:      "us-east-1",
		Endpoint:    "http://minio.local:9000",
		TTL:         15 * time.Minute,
		Credentials: credentials.NewStaticCredentials("AKIDEXAMPLE", "secret", ""),
	})
	require.NoError(t, err)

	link, err := presigner.PresignGet(context.Background(), "/documents/quran.pdf")
	require.NoError(t, err)

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "minio.local:9000", parsed.Host)
	assert.Equal(t, "/library/documents/quran.pdf", parsed.Path)
	assert.Equal(t, "900", parsed.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, parsed.Query().Get("X-Amz-Signature"))

	_, err = presigner.PresignGet(context.Background(), "")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestNew_WithoutBucket degrades to a 503 presigner.
*/
func TestNew_WithoutBucket(t *testing.T) {
	presigner, err := storage.New(storage.Config{})
	require.NoError(t, err)

	_, err = presigner.PresignGet(context.Background(), "forms/f1.pdf")
	assert.True(t, apperr.HasCode(err, apperr.CodeUnavailable))
}
