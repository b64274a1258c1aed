package dataflows

import (
	"net/url"
	"strconv"
	"strings"
)

// RedactedPlaceholder replaces the API token in printed output.
const RedactedPlaceholder = "***"

// BuildRequest resolves opts to a path and query. The token is always the
// first parameter, followed by fmt=json.
func BuildRequest(opts Options, token string) (*Request, error) {
	ep, ok := LookupEndpoint(opts.Endpoint)
	if !ok {
		return nil, usageErrorf("unsupported endpoint: %q", opts.Endpoint)
	}

	path, err := ep.BuildPath(opts.Symbol, opts.Function)
	if err != nil {
		return nil, err
	}

	q := Query{}
	q.Add("api_token", token)
	q.Add("fmt", "json")

	addString(&q, "from", opts.FromDate)
	addString(&q, "to", opts.ToDate)
	addInt(&q, "limit", opts.Limit)
	addInt(&q, "offset", opts.Offset)
	addString(&q, "interval", opts.Interval)
	addString(&q, "function", opts.Function)
	addInt(&q, "period", opts.Period)
	addString(&q, "indicator", opts.Indicator)
	addString(&q, "filter", opts.Filter)

	if ep.Symbol == SymbolOptional && ep.SymbolParam != "" {
		addString(&q, ep.SymbolParam, strings.TrimSpace(opts.Symbol))
	}

	return &Request{Endpoint: ep, Path: path, Query: q}, nil
}

func addString(q *Query, key, value string) {
	if value != "" {
		q.Add(key, value)
	}
}

func addInt(q *Query, key string, value *int) {
	if value != nil {
		q.Add(key, strconv.Itoa(*value))
	}
}

// Redact replaces every occurrence of token in s, raw or query-escaped.
func Redact(s, token string) string {
	if token == "" {
		return s
	}
	s = strings.ReplaceAll(s, token, RedactedPlaceholder)
	if escaped := url.QueryEscape(token); escaped != token {
		s = strings.ReplaceAll(s, escaped, RedactedPlaceholder)
	}
	if escaped := url.PathEscape(token); escaped != token {
		s = strings.ReplaceAll(s, escaped, RedactedPlaceholder)
	}
	return s
}
