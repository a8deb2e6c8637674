package store

import (
	"net/url"
	"strconv"
	"strings"
)

// Filter is one query parameter in the remote store's filter dialect.
// Construct filters with the helpers below rather than raw strings so the
// wire encoding stays well-formed.
type Filter struct {
	key   string
	value string
}

// Filters is an ordered set of query parameters.
type Filters []Filter

// Eq matches rows where column equals value.
func Eq(column, value string) Filter {
	return Filter{key: column, value: "eq." + value}
}

// In matches rows where column is one of values, encoded as in.(a,b,c).
func In(column string, values ...string) Filter {
	return Filter{key: column, value: "in.(" + strings.Join(values, ",") + ")"}
}

// Contains matches array columns containing every value, encoded as cs.{a,b}.
func Contains(column string, values ...string) Filter {
	return Filter{key: column, value: "cs.{" + strings.Join(values, ",") + "}"}
}

// ILike matches column case-insensitively against *needle*.
func ILike(column, needle string) Filter {
	return Filter{key: column, value: "ilike.*" + needle + "*"}
}

// Or combines condition filters disjunctively, encoded as or=(a.eq.1,b.eq.2).
// Only condition filters (Eq, In, Contains, ILike) are meaningful inside.
func Or(conds ...Filter) Filter {
	parts := make([]string, 0, len(conds))
	for _, c := range conds {
		parts = append(parts, c.key+"."+c.value)
	}
	return Filter{key: "or", value: "(" + strings.Join(parts, ",") + ")"}
}

// Order sorts results by column, descending when desc is set.
func Order(column string, desc bool) Filter {
	if desc {
		return Filter{key: "order", value: column + ".desc"}
	}
	return Filter{key: "order", value: column + ".asc"}
}

// Limit caps the number of returned rows.
func Limit(n int) Filter {
	return Filter{key: "limit", value: strconv.Itoa(n)}
}

// Offset skips the first n rows.
func Offset(n int) Filter {
	return Filter{key: "offset", value: strconv.Itoa(n)}
}

// Select projects only the named columns.
func Select(columns ...string) Filter {
	return Filter{key: "select", value: strings.Join(columns, ",")}
}

// OnConflict names the upsert conflict column.
func OnConflict(column string) Filter {
	return Filter{key: "on_conflict", value: column}
}

// Encode renders the filters as URL query parameters.
func (f Filters) Encode() string {
	q := url.Values{}
	for _, flt := range f {
		q.Add(flt.key, flt.value)
	}
	return q.Encode()
}
