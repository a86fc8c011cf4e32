package models

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Query holds the parameters forwarded to the search endpoint.
// Setting a key twice keeps the last value.
type Query map[string]string

// DefaultQuery returns the fixed API format flags.
func DefaultQuery() Query {
	return Query{
		"api":    "on",
		"format": "json",
		"limit":  "1",
	}
}

func (q Query) Clone() Query {
	out := make(Query, len(q))
	for key, value := range q {
		out[key] = value
	}
	return out
}

// WithPage returns a copy of q requesting the given page and page size.
func (q Query) WithPage(page, size int) Query {
	out := q.Clone()
	out["page"] = strconv.Itoa(page)
	out["limit"] = strconv.Itoa(size)
	return out
}

// Encode renders the query in sorted key order.
func (q Query) Encode() string {
	values := url.Values{}
	for key, value := range q {
		values.Set(key, value)
	}
	return values.Encode()
}

// String renders the query as space separated key=value pairs.
func (q Query) String() string {
	keys := make([]string, 0, len(q))
	for key := range q {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+"="+q[key])
	}
	return strings.Join(parts, " ")
}
