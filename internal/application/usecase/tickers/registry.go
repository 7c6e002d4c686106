package tickers

import "github.com/ducksquaddd/discord-price-tickers/internal/application/port"

// Entry binds one presence session to the asset it tracks. The registry (a
// plain slice of entries) is built once in main and never mutated; all fan-out
// and readiness logic ranges over it instead of naming sessions individually.
type Entry struct {
	Session port.PresenceSession
	AssetID string
	Label   string
	GuildID string
}
