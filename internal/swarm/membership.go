package swarm

import "github.com/google/uuid"

// Membership is the keyed registry of swarm members. Lookup results
// derive from map iteration and are deliberately unordered; callers that
// need determinism must sort on a key of their own.
type Membership struct {
	// SwarmID is generated once at creation and identifies this swarm
	// in status snapshots and logs.
	SwarmID string

	members map[string]*Member
}

// NewMembership creates an empty registry with a generated swarm id.
func NewMembership() *Membership {
	return &Membership{
		SwarmID: uuid.NewString(),
		members: make(map[string]*Member),
	}
}

// Add inserts a member, overwriting any existing member with the same id.
func (ms *Membership) Add(m *Member) {
	ms.members[m.ID] = m
}

// Remove deletes a member by id. Returns true if the member existed.
func (ms *Membership) Remove(id string) bool {
	if _, ok := ms.members[id]; !ok {
		return false
	}
	delete(ms.members, id)
	return true
}

// Get returns the member with the given id.
func (ms *Membership) Get(id string) (*Member, bool) {
	m, ok := ms.members[id]
	return m, ok
}

// Members returns all members in unspecified order.
func (ms *Membership) Members() []*Member {
	out := make([]*Member, 0, len(ms.members))
	for _, m := range ms.members {
		out = append(out, m)
	}
	return out
}

// MembersForSector returns every member serving the given sector, in
// unspecified order.
func (ms *Membership) MembersForSector(sector string) []*Member {
	var out []*Member
	for _, m := range ms.members {
		if m.CanHandle(sector) {
			out = append(out, m)
		}
	}
	return out
}

// Count returns the number of registered members.
func (ms *Membership) Count() int {
	return len(ms.members)
}

// ActiveCount returns the number of members in the alive state.
func (ms *Membership) ActiveCount() int {
	n := 0
	for _, m := range ms.members {
		if m.State == StateAlive {
			n++
		}
	}
	return n
}

// TotalCapacity returns the summed capacity of all members.
func (ms *Membership) TotalCapacity() int {
	n := 0
	for _, m := range ms.members {
		n += m.Capacity
	}
	return n
}

// TotalLoad returns the summed current load of all members.
func (ms *Membership) TotalLoad() int {
	n := 0
	for _, m := range ms.members {
		n += m.CurrentLoad
	}
	return n
}
