package listctl

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Query is the combined pagination and filter state a list screen owns.
// Page is 1-based. Mutated only through the controller so the reset rules
// cannot be skipped.
type Query struct {
	Page    int
	Size    int
	Search  string
	Filters map[string]string
}

// Key derives the canonical fetch identity for the query. Responses carry
// the key they were issued under; only the response matching the current
// key may be applied. Fields are sorted so equal queries always collide.
func (q Query) Key() string {
	var b strings.Builder
	b.WriteString("page=")
	b.WriteString(strconv.Itoa(q.Page))
	b.WriteString("&size=")
	b.WriteString(strconv.Itoa(q.Size))
	if q.Search != "" {
		b.WriteString("&search=")
		b.WriteString(url.QueryEscape(q.Search))
	}
	if len(q.Filters) > 0 {
		fields := make([]string, 0, len(q.Filters))
		for f := range q.Filters {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			if q.Filters[f] == "" {
				continue
			}
			b.WriteString("&")
			b.WriteString(url.QueryEscape(f))
			b.WriteString("=")
			b.WriteString(url.QueryEscape(q.Filters[f]))
		}
	}
	return b.String()
}

// Values renders the query as request parameters for the gateway.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Size))
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	for field, val := range q.Filters {
		if val != "" {
			v.Set(field, val)
		}
	}
	return v
}

func (q Query) clone() Query {
	out := q
	if q.Filters != nil {
		out.Filters = make(map[string]string, len(q.Filters))
		for k, v := range q.Filters {
			out.Filters[k] = v
		}
	}
	return out
}
