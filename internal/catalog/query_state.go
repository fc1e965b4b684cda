package catalog

import (
	"net/url"
	"strconv"
)

const (
	sortParam = "sort"
	pageParam = "page"
)

// QueryState is the part of the browsing state mirrored into the URL. Category and price range
// stay session-local and are reset by a reload.
type QueryState struct {
	Sort SortKey `json:"sort"`
	Page int     `json:"page"`
}

var DefaultQueryState = QueryState{Sort: SortNameAsc, Page: 1}

// DecodeQueryState reads sort and page from values, falling back to defaults for each value that
// is absent or unparsable.
func DecodeQueryState(values url.Values, defaults QueryState) QueryState {
	state := defaults

	if sort := values.Get(sortParam); sort != "" {
		state.Sort = SortKey(sort)
	}

	if raw := values.Get(pageParam); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page >= 1 {
			state.Page = page
		}
	}

	return state
}

// Encode returns a copy of values with sort and page rewritten. Other parameters are kept.
func (q QueryState) Encode(values url.Values) url.Values {
	out := url.Values{}
	for k, v := range values {
		out[k] = append([]string(nil), v...)
	}

	if q.Sort != "" {
		out.Set(sortParam, string(q.Sort))
	} else {
		out.Del(sortParam)
	}

	if q.Page > 0 {
		out.Set(pageParam, strconv.Itoa(q.Page))
	} else {
		out.Del(pageParam)
	}

	return out
}

// Replace returns u with its query rewritten for q, the equivalent of a history replace rather
// than a new navigation.
func (q QueryState) Replace(u url.URL) url.URL {
	u.RawQuery = q.Encode(u.Query()).Encode()
	return u
}
