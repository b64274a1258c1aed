package dataflows

import (
	"net/url"
	"strings"
)

// Options holds the per-invocation request arguments. Integer fields are nil
// when not supplied.
type Options struct {
	Endpoint  string
	Symbol    string
	FromDate  string
	ToDate    string
	Interval  string
	Limit     *int
	Offset    *int
	Function  string
	Period    *int
	Indicator string
	Filter    string
}

// Param is a single query parameter.
type Param struct {
	Key   string
	Value string
}

// Query is an ordered list of query parameters. Encode keeps insertion order.
type Query []Param

func (q *Query) Add(key, value string) {
	*q = append(*q, Param{Key: key, Value: value})
}

// Get returns the first value for key.
func (q Query) Get(key string) (string, bool) {
	for _, p := range q {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

func (q Query) Has(key string) bool {
	_, ok := q.Get(key)
	return ok
}

func (q Query) Keys() []string {
	keys := make([]string, 0, len(q))
	for _, p := range q {
		keys = append(keys, p.Key)
	}
	return keys
}

func (q Query) Encode() string {
	var sb strings.Builder
	for i, p := range q {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}
	return sb.String()
}

// Request is a resolved API call.
type Request struct {
	Endpoint Endpoint
	Path     string
	Query    Query
}

// URL joins baseURL, the path and the encoded query.
func (r *Request) URL(baseURL string) string {
	u := strings.TrimRight(baseURL, "/") + r.Path
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}
	return u
}

// Response is a buffered HTTP response.
type Response struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
