//go:build integration

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"givelink/internal/org"
	"givelink/pkg/platform/sentinel"
	"givelink/pkg/testutil/containers"
)

func newOrg(email, ein, code string) org.Organization {
	return org.Organization{
		ID:           uuid.New(),
		Name:         "City Food Bank",
		Email:        email,
		PasswordHash: []byte("$2a$10$fakehashfakehashfakehash"),
		ShortCode:    code,
		TargetURL:    "https://donate.cityfoodbank.org/give",
		EIN:          ein,
		QRCode:       "iVBORw0KGgo=",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestPostgres_CreateAndFind(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	s := NewPostgres(pg.DB)
	ctx := context.Background()

	created, err := s.Create(ctx, newOrg("ops@cityfoodbank.org", "12-3456789", "aB3xY9Zq"))
	require.NoError(t, err)

	for name, find := range map[string]func() (org.Organization, error){
		"by email":      func() (org.Organization, error) { return s.FindByEmail(ctx, "ops@cityfoodbank.org") },
		"by ein":        func() (org.Organization, error) { return s.FindByEIN(ctx, "12-3456789") },
		"by short code": func() (org.Organization, error) { return s.FindByShortCode(ctx, "aB3xY9Zq") },
	} {
		t.Run(name, func(t *testing.T) {
			got, err := find()
			require.NoError(t, err)
			assert.Equal(t, created.ID, got.ID)
			assert.Equal(t, created.TargetURL, got.TargetURL)
			assert.Equal(t, created.PasswordHash, got.PasswordHash)
		})
	}
}

func TestPostgres_NotFound(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	s := NewPostgres(pg.DB)

	_, err := s.FindByShortCode(context.Background(), "missing1")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestPostgres_UniqueViolationsNameTheField(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	s := NewPostgres(pg.DB)
	ctx := context.Background()

	_, err := s.Create(ctx, newOrg("ops@cityfoodbank.org", "12-3456789", "aB3xY9Zq"))
	require.NoError(t, err)

	cases := map[string]struct {
		other org.Organization
		field org.Field
	}{
		"email":      {newOrg("ops@cityfoodbank.org", "98-7654321", "zZ9yX8Wv"), org.FieldEmail},
		"ein":        {newOrg("other@cityfoodbank.org", "12-3456789", "zZ9yX8Wv"), org.FieldEIN},
		"short code": {newOrg("other@cityfoodbank.org", "98-7654321", "aB3xY9Zq"), org.FieldShortCode},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.Create(ctx, tc.other)
			var dup org.DuplicateKeyError
			require.ErrorAs(t, err, &dup)
			assert.Equal(t, tc.field, dup.Field)
			assert.ErrorIs(t, err, sentinel.ErrConflict)
		})
	}
}

func TestPostgres_ConcurrentCreateSameEIN(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	s := NewPostgres(pg.DB)
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			o := newOrg(fmt.Sprintf("org%d@example.org", i), "12-3456789", fmt.Sprintf("code%04d", i))
			_, errs[i] = s.Create(ctx, o)
		}(i)
	}
	wg.Wait()

	var wins int
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		var dup org.DuplicateKeyError
		require.True(t, errors.As(err, &dup))
		assert.Equal(t, org.FieldEIN, dup.Field)
	}
	assert.Equal(t, 1, wins, "the database arbitrates exactly one winner")
}
