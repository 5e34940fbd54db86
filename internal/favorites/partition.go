package favorites

import (
	"github.com/kinfolium/kinfolium/internal/db/models"
)

// typeOrder fixes how type buckets are presented inside a group.
var typeOrder = []models.FavoriteType{
	models.TypeIndividual,
	models.TypeFamily,
	models.TypeMedia,
	models.TypeSource,
	models.TypeRepository,
	models.TypeNote,
	models.TypeURL,
}

// Bucket holds one group's reconciled favorites.
type Bucket struct {
	// Group identifies the bucket.
	Group Group
	// Key is the group's form token, computed once when the group is
	// first seen.
	Key string
	// Count is the number of favorites in the group.
	Count int
	// members keeps insertion order per favorite type.
	members map[models.FavoriteType][]models.Favorite
}

// Members returns the bucket's favorites ordered by type bucket, then
// insertion order within each type.
func (b *Bucket) Members() []models.Favorite {
	out := make([]models.Favorite, 0, b.Count)
	for _, t := range typeOrder {
		out = append(out, b.members[t]...)
	}

	return out
}

// MembersOfType returns the bucket's favorites of one type in
// insertion order.
func (b *Bucket) MembersOfType(t models.FavoriteType) []models.Favorite {
	return b.members[t]
}

// Partition is the derived view of one user's favorite set: favorites
// grouped by canonical group name, with a stable key per group and a
// reverse key lookup for interpreting submitted form tokens.
//
// A Partition is never persisted; it is recomputed from the live
// favorite rows whenever the set changes.
type Partition struct {
	order   []Group
	buckets map[Group]*Bucket
	byKey   map[string]Group
}

// NewPartition folds a favorite set into its group partition. The
// default-group bucket is initialized first so it always exists, even
// with zero members, giving the UI a valid "move to default" target.
func NewPartition(favs []models.Favorite) *Partition {
	p := &Partition{
		buckets: make(map[Group]*Bucket),
		byKey:   make(map[string]Group),
	}
	p.bucket(DefaultGroup)

	for _, fav := range favs {
		b := p.bucket(GroupNamed(fav.Note))
		b.members[fav.Type] = append(b.members[fav.Type], fav)
		b.Count++
	}

	return p
}

// bucket returns the bucket for g, creating it on first sight.
func (p *Partition) bucket(g Group) *Bucket {
	if b, ok := p.buckets[g]; ok {
		return b
	}

	b := &Bucket{
		Group:   g,
		Key:     g.Key(),
		members: make(map[models.FavoriteType][]models.Favorite),
	}
	p.buckets[g] = b
	p.byKey[b.Key] = g
	p.order = append(p.order, g)

	return b
}

// Bucket returns the bucket for g, or nil if the group has no entry.
func (p *Partition) Bucket(g Group) *Bucket {
	return p.buckets[g]
}

// Groups returns all buckets in first-seen order, default group first.
func (p *Partition) Groups() []*Bucket {
	out := make([]*Bucket, 0, len(p.order))
	for _, g := range p.order {
		out = append(out, p.buckets[g])
	}

	return out
}

// GroupByKey resolves a submitted form token back to its group.
func (p *Partition) GroupByKey(key string) (Group, bool) {
	g, ok := p.byKey[key]
	return g, ok
}

// Contains reports whether the given record is favorited in any group.
func (p *Partition) Contains(favType models.FavoriteType, xref string) bool {
	for _, b := range p.buckets {
		for _, fav := range b.members[favType] {
			if fav.Xref == xref {
				return true
			}
		}
	}

	return false
}

// Total returns the number of favorites across all groups.
func (p *Partition) Total() int {
	var n int
	for _, b := range p.buckets {
		n += b.Count
	}

	return n
}
