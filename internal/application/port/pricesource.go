package port

import (
	"context"

	"github.com/ducksquaddd/discord-price-tickers/internal/domain"
)

// PriceSource fetches one complete snapshot of the tracked assets.
// Implementations return an error instead of a partial snapshot.
type PriceSource interface {
	Fetch(ctx context.Context) (domain.Snapshot, error)
}
