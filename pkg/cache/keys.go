package cache

// Keyer generates cache keys.
type Keyer interface {
	// AnalysisKey keys a task analysis by the task-list fingerprint.
	AnalysisKey(fingerprint string) string
}

// AnalysisVersion is bumped whenever the analysis wire format changes so
// stale entries are never decoded.
const AnalysisVersion = 1

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() DefaultKeyer { return DefaultKeyer{} }

// AnalysisKey implements Keyer.
func (DefaultKeyer) AnalysisKey(fingerprint string) string {
	return hashKey("analysis", AnalysisVersion, fingerprint)
}

// ScopedKeyer wraps a Keyer with a prefix so tenants sharing a backend get
// separate namespaces.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "team:infra:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a prefixed keyer. A nil inner uses DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) *ScopedKeyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// AnalysisKey implements Keyer.
func (k *ScopedKeyer) AnalysisKey(fingerprint string) string {
	return k.prefix + k.inner.AnalysisKey(fingerprint)
}
