package library

import (
	"cmp"
	"slices"

	"github.com/mauv0809/courtside/internal/game"
)

// Merge combines the remote list with the local cache into the list shown
// to the user. Remote entries win: a local entry is only added when its id
// is not already present. Entries without an id or a stats payload are
// dropped before combining. The result is sorted newest-first by CreatedAt
// with unparseable timestamps last; ties keep their combined order.
func Merge(remote, local []game.Record) []game.Record {
	seen := make(map[string]struct{}, len(remote)+len(local))
	out := make([]game.Record, 0, len(remote)+len(local))
	for _, list := range [][]game.Record{remote, local} {
		for _, r := range list {
			if !r.Valid() {
				continue
			}
			if _, ok := seen[r.ID]; ok {
				continue
			}
			seen[r.ID] = struct{}{}
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b game.Record) int {
		return cmp.Compare(b.CreatedAtMillis(), a.CreatedAtMillis())
	})
	return out
}
