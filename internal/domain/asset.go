package domain

// CoinGecko asset identifiers for the tracked set.
const (
	AssetCosmos   = "cosmos"
	AssetBitcoin  = "bitcoin"
	AssetEthereum = "ethereum"
)

// TrackedAsset describes one compiled-in asset: Key is the short config/env
// key, ID the CoinGecko identifier, Label the human name shown in nicknames.
type TrackedAsset struct {
	Key   string
	ID    string
	Label string
}

// Tracked is the fixed asset set. One bot session is run per entry.
var Tracked = []TrackedAsset{
	{Key: "atom", ID: AssetCosmos, Label: "Atom"},
	{Key: "btc", ID: AssetBitcoin, Label: "Bitcoin"},
	{Key: "eth", ID: AssetEthereum, Label: "Ethereum"},
}

// TrackedIDs returns the CoinGecko IDs of the tracked set, in registry order.
func TrackedIDs() []string {
	ids := make([]string, 0, len(Tracked))
	for _, t := range Tracked {
		ids = append(ids, t.ID)
	}
	return ids
}

// Asset is one asset's price data from a single fetch cycle.
type Asset struct {
	ID        string
	Label     string
	Price     float64
	Change24h float64
}

// Snapshot maps CoinGecko ID -> Asset. A snapshot is complete: it either
// carries every tracked asset or is never constructed at all.
type Snapshot map[string]Asset

// MarketDown reports whether any tracked asset lost value over the last 24h.
// Exactly zero counts as not down.
func MarketDown(s Snapshot) bool {
	for _, a := range s {
		if a.Change24h < 0 {
			return true
		}
	}
	return false
}
