// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanoon/kanoon/internal/access"
	"github.com/kanoon/kanoon/internal/platform/ctxutil"
)

/*
TestEmptyContext returns the documented fallbacks when no request values are set.
*/
func TestEmptyContext(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, ctxutil.GetRequestID(ctx))
	assert.Same(t, slog.Default(), ctxutil.GetLogger(ctx))
	assert.Nil(t, ctxutil.GetPrincipal(ctx))
}

func TestRequestValues(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	principal := &access.Principal{UserID: 7, Approved: true, Roles: access.NewRoleSet(access.RoleHeyat)}

	ctx := ctxutil.WithRequestID(context.Background(), "01J9Z")
	ctx = ctxutil.WithLogger(ctx, logger)
	ctx = ctxutil.WithPrincipal(ctx, principal)

	assert.Equal(t, "01J9Z", ctxutil.GetRequestID(ctx))
	assert.Same(t, logger, ctxutil.GetLogger(ctx))

	got := ctxutil.GetPrincipal(ctx)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.UserID)
	assert.True(t, got.Roles.Has(access.RoleHeyat))
	assert.False(t, got.Roles.Has(access.RoleCamp))
}
