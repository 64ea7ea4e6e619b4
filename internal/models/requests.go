package models

// Target names a piece of UI state that host responses overwrite.
type Target int

const (
	EditorTarget Target = iota
	AutocompleteTarget
	TreeRootTarget
)

// Requests stamps host calls per target so that only the response to the
// latest request is applied.
type Requests struct {
	latest map[Target]uint64
}

// Next issues a new stamp for target, making earlier ones stale.
func (r *Requests) Next(target Target) uint64 {
	if r.latest == nil {
		r.latest = make(map[Target]uint64)
	}
	r.latest[target]++
	return r.latest[target]
}

// Current reports whether gen is the latest stamp issued for target.
func (r *Requests) Current(target Target, gen uint64) bool {
	return gen != 0 && r.latest[target] == gen
}

// Cancel makes every outstanding request for target stale.
func (r *Requests) Cancel(target Target) {
	r.Next(target)
}
