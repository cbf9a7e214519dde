package store

import (
	"sort"
	"strings"

	"github.com/mrnerf/paperlist/internal/catalog"
)

// dateSentinel sorts after any real ISO-8601 date, so records without a
// publication date end up last under the descending primary key.
const dateSentinel = "9999"

// SortByDate orders the collection newest-first: publication date
// descending (undated records last), then first author surname ascending,
// then title ascending. The sort is stable across repeated runs.
func (s *Store) SortByDate() {
	sort.SliceStable(s.records, func(i, j int) bool {
		return recordLess(s.records[i], s.records[j])
	})
}

func recordLess(a, b catalog.Record) bool {
	da, db := sortDate(a), sortDate(b)
	if da != db {
		if da == dateSentinel {
			return false
		}
		if db == dateSentinel {
			return true
		}
		return da > db // descending
	}

	sa, sb := a.FirstAuthorSurname(), b.FirstAuthorSurname()
	if sa != sb {
		return sa < sb
	}
	return strings.ToLower(a.Title) < strings.ToLower(b.Title)
}

func sortDate(r catalog.Record) string {
	if r.PublicationDate == "" {
		return dateSentinel
	}
	return r.PublicationDate
}
