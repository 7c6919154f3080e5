//go:build integration

package log

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"givelink/internal/org"
	orgstore "givelink/internal/org/store"
	"givelink/pkg/testutil/containers"
)

func TestPostgresStore_AppendAndList(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()

	// The events table has a foreign key, so seed a real organization first.
	owner := org.Organization{
		ID:           uuid.New(),
		Name:         "City Food Bank",
		Email:        "ops@cityfoodbank.org",
		PasswordHash: []byte("hash"),
		ShortCode:    "aB3xY9Zq",
		TargetURL:    "https://donate.cityfoodbank.org/give",
		EIN:          "12-3456789",
		QRCode:       "iVBORw0KGgo=",
		CreatedAt:    time.Now().UTC(),
	}
	_, err := orgstore.NewPostgres(pg.DB).Create(ctx, owner)
	require.NoError(t, err)

	s := NewPostgresStore(pg.DB)
	base := time.Now().UTC().Truncate(time.Microsecond)
	for i := 0; i < 3; i++ {
		err := s.Append(ctx, Event{ID: uuid.New(), OrgID: owner.ID, At: base.Add(time.Duration(i) * time.Second)})
		require.NoError(t, err)
	}

	events, err := s.ListByOrg(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, events, 3)
	for i := 1; i < len(events); i++ {
		assert.True(t, !events[i].At.Before(events[i-1].At), "events ordered by occurrence")
	}

	other, err := s.ListByOrg(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}
