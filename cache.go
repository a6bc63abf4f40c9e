package bluetooth

// DefaultMatchCacheSize bounds how many observation shapes the manager
// remembers as already matched. Some devices rotate random addresses, so an
// unbounded set would grow without limit; beyond this many entries the least
// recently recorded shape is forgotten and a reappearing device simply goes
// through full matcher evaluation again.
const DefaultMatchCacheSize = 2048

// MatchKey identifies an observation shape in the match cache: the device
// address plus whether that observation carried manufacturer data. The two
// shapes are tracked separately because a device that failed to match
// without manufacturer data may still match once the data appears.
type MatchKey struct {
	Address             string
	HasManufacturerData bool
}

// MatchCache remembers which observation shapes already resolved to at least
// one matched integration, so the full matcher set is not re-evaluated for
// every advertisement. Contains must not refresh an entry's recency; Add
// inserts or refreshes and evicts the least recently added entry beyond
// capacity. Implementations must be safe for concurrent use.
type MatchCache interface {
	Contains(key MatchKey) bool
	Add(key MatchKey)
	Len() int
}
