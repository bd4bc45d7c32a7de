package generator

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"fieldgen/pkg/engine/world"
)

// BorderID is the reserved region of the outer ring. No rack component starts with it.
const BorderID world.RegionID = -2

// Component is the connectivity label of one rack.
// Origin is the rack index; ID is the label it currently answers to.
type Component struct {
	Origin int
	ID     world.RegionID
	Closed bool // no further walls may join this territory to another region
}

// Independent reports whether the component still carries its own label
func (c Component) Independent() bool {
	return c.ID == world.RegionID(c.Origin)
}

// Registry holds one component per rack, in rack order.
// Components are never removed; merged-away labels simply stop being used.
type Registry struct {
	components []*Component
}

// NewRegistry creates n components labelled 0..n-1
func NewRegistry(n int) *Registry {
	r := &Registry{components: make([]*Component, n)}
	for i := range r.components {
		r.components[i] = &Component{Origin: i, ID: world.RegionID(i)}
	}
	return r
}

// Len returns the number of components
func (r *Registry) Len() int {
	return len(r.components)
}

// ID returns the current label of component i
func (r *Registry) ID(i int) world.RegionID {
	return r.components[i].ID
}

// Carries returns true if some component currently answers to id
func (r *Registry) Carries(id world.RegionID) bool {
	for _, c := range r.components {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Merge relabels every component answering to src with dst and returns how many were rewritten.
// Merging a label nobody carries, or into an unknown label, is a programming error.
// Cost is linear in the number of components, which is bounded by the rack count.
func (r *Registry) Merge(src, dst world.RegionID) int {
	if src == dst {
		return 0
	}
	if dst != BorderID && !r.Carries(dst) {
		panic(fmt.Sprintf("generator: merge into unknown component %d", dst))
	}

	rewritten := 0
	for _, c := range r.components {
		if c.ID == src {
			c.ID = dst
			rewritten++
		}
	}
	if rewritten == 0 {
		panic(fmt.Sprintf("generator: merge of unknown component %d", src))
	}
	return rewritten
}

// Live returns the distinct labels in use, in order of first appearance
func (r *Registry) Live() []world.RegionID {
	seen := mapset.New[world.RegionID]()
	var live []world.RegionID
	for _, c := range r.components {
		if seen.Has(c.ID) {
			continue
		}
		seen.Put(c.ID)
		live = append(live, c.ID)
	}
	return live
}

// Independent reports whether component i was never relabelled
func (r *Registry) Independent(i int) bool {
	return r.components[i].Independent()
}

// Close forbids any further connection of component i's territory to other regions
func (r *Registry) Close(i int) {
	if !r.components[i].Independent() {
		panic(fmt.Sprintf("generator: closing absorbed component %d", i))
	}
	r.components[i].Closed = true
}

// IsClosed reports whether territory labelled id is closed
func (r *Registry) IsClosed(id world.RegionID) bool {
	if id < 0 || int(id) >= len(r.components) {
		return false
	}
	c := r.components[id]
	return c.Closed && c.ID == id
}

// Snapshot returns a copy of every component in rack order
func (r *Registry) Snapshot() []Component {
	out := make([]Component, len(r.components))
	for i, c := range r.components {
		out[i] = *c
	}
	return out
}
