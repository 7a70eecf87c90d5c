package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type expireRepoMock struct {
	Repo

	expireFn func(ctx context.Context, cutoff time.Time, reason string) (int64, error)
}

func (m *expireRepoMock) ExpireBefore(ctx context.Context, cutoff time.Time, reason string) (int64, error) {
	return m.expireFn(ctx, cutoff, reason)
}

func TestExpireOverdue(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	var gotCutoff time.Time
	var gotReason string
	m := &expireRepoMock{
		expireFn: func(ctx context.Context, cutoff time.Time, reason string) (int64, error) {
			gotCutoff = cutoff
			gotReason = reason
			return 3, nil
		},
	}

	e := &expirer{r: m, now: func() time.Time { return now }}
	n, err := e.ExpireOverdue(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
	require.Equal(t, now.UTC(), gotCutoff)
	require.Equal(t, expiryReason, gotReason)
}
