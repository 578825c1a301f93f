package domain

const (
	SortAscending  = 1
	SortDescending = -1
)

// SortSpec orders a listing by a single field.
type SortSpec struct {
	Field     string
	Direction int
}

// ListingQuery is a store-agnostic job listing read: a predicate, an optional
// ordering, and a page window.
type ListingQuery struct {
	Predicate map[string]any
	Sort      *SortSpec
	Skip      int64
	Limit     int64
}

// CategoryPredicate restricts a job read to one category. An empty filter
// matches every job.
func CategoryPredicate(filter string) map[string]any {
	if filter == "" {
		return map[string]any{}
	}
	return map[string]any{"category": filter}
}

// BuildListingQuery composes filter, sort and a 1-indexed page into a query.
//
// sort "asc" orders by deadline ascending, any other non-empty value orders
// descending, and an empty sort keeps the store's natural order. page and size
// are not checked here; callers validate them before building.
func BuildListingQuery(filter, sort string, page, size int) ListingQuery {
	q := ListingQuery{
		Predicate: CategoryPredicate(filter),
		Skip:      int64(page-1) * int64(size),
		Limit:     int64(size),
	}

	switch sort {
	case "":
	case "asc":
		q.Sort = &SortSpec{Field: "deadline", Direction: SortAscending}
	default:
		q.Sort = &SortSpec{Field: "deadline", Direction: SortDescending}
	}

	return q
}
