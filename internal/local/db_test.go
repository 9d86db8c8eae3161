package local

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unistay/unistay/internal/logging"
	"github.com/unistay/unistay/internal/models"
)

func TestOpen_FreshFileCreatesSchema(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "unistay.db")
	ctx := context.Background()

	s, err := Open(ctx, dsn, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	// repositories are usable right away
	require.NoError(t, s.Profiles.Replace(ctx, &models.Profile{ID: "u1", Name: "Alex"}))
	p, err := s.Profiles.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", p.ID)

	v, err := s.Meta.Get(ctx, "schema_version")
	require.NoError(t, err)
	assert.Equal(t, "6", v)
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "unistay.db")
	ctx := context.Background()

	s, err := Open(ctx, dsn, logging.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Listings.Put(ctx, &models.Listing{ID: "l1", OwnerID: "u1", Status: models.Posted()}))
	require.NoError(t, s.Close())

	s2, err := Open(ctx, dsn, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s2.Close() })

	l, err := s2.Listings.Get(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, "u1", l.OwnerID)
}
