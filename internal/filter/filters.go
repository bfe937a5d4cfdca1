package filter

import (
	"strings"

	"github.com/siahsang/conduit/internal/validator"
)

const (
	DefaultLimit = 20
	SortAsc      = "ASC"
	SortDesc     = "DESC"
)

// Filter carries pagination and the creation-time sort direction of a listing.
type Filter struct {
	Limit     int64
	Offset    int64
	SortOrder string
}

func NewFilter(limit, offset int64, sortOrder string) Filter {
	return Filter{
		Limit:     limit,
		Offset:    offset,
		SortOrder: strings.ToUpper(strings.TrimSpace(sortOrder)),
	}
}

func ValidateFilters(filters Filter, v *validator.Validator) {
	v.Check(filters.Limit > 0, "limit", "must be greater than 0")
	v.Check(filters.Limit <= 100, "limit", "must be a maximum of 100")
	v.Check(filters.Offset >= 0, "offset", "must be greater than or equal to 0")
	v.Check(filters.Offset <= 10_000_000, "offset", "must be a maximum of 10_000_000")
	if filters.SortOrder != "" {
		v.Check(validator.PermittedValue(filters.SortOrder, SortAsc, SortDesc), "sortOrder", "must be ASC or DESC")
	}
}

// OrderDirection is safe to interpolate into SQL: anything but ASC becomes DESC.
func (f Filter) OrderDirection() string {
	if f.SortOrder == SortAsc {
		return SortAsc
	}
	return SortDesc
}

// Page applies Offset and Limit to an already ordered slice.
func Page[T any](items []T, f Filter) []T {
	if f.Offset >= int64(len(items)) {
		return []T{}
	}
	end := int64(len(items))
	if f.Limit > 0 && f.Offset+f.Limit < end {
		end = f.Offset + f.Limit
	}
	return items[f.Offset:end]
}
