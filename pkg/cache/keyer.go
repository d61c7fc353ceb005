package cache

// Keyer names cache entries.
type Keyer interface {
	// LayoutKey names the cached layout document of a venue.
	LayoutKey(venueID string) string
}

// DefaultKeyer produces layout:<sha256(venueID)> keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(venueID string) string {
	return hashKey("layout", venueID)
}

// ScopedKeyer prefixes every key of an inner Keyer. Use it when several
// deployments, such as a staging and a production server, share one Redis.
//
//	k := cache.NewScopedKeyer(nil, "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey implements Keyer.
func (k *ScopedKeyer) LayoutKey(venueID string) string {
	return k.prefix + k.inner.LayoutKey(venueID)
}
