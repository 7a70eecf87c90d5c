package transaction

import (
	"context"
	"time"
)

// Expirer sweeps transactions whose payment window elapsed before a terminal
// state was reached and marks them EXPIRED with the fixed timeout reason.
type Expirer interface {
	ExpireOverdue(ctx context.Context) (int64, error)
}

type expirer struct {
	r   Repo
	now func() time.Time
}

func NewExpirer(r Repo) Expirer { return &expirer{r: r, now: time.Now} }

func (e *expirer) ExpireOverdue(ctx context.Context) (int64, error) {
	return e.r.ExpireBefore(ctx, e.now().UTC(), expiryReason)
}
