// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kanoon/kanoon/internal/platform/migration"
)

/*
TestSchemeFor covers the DSN forms accepted by the config layer.
*/
func TestSchemeFor(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"postgres://kanoon:pw@db:5432/kanoon", "pgx5://kanoon:pw@db:5432/kanoon"},
		{"postgresql://db/kanoon?sslmode=disable", "pgx5://db/kanoon?sslmode=disable"},
		{"pgx5://db/kanoon", "pgx5://db/kanoon"},
		{"host=db dbname=kanoon", "host=db dbname=kanoon"},
	}
	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.SchemeFor(tt.dsn))
		})
	}
}
