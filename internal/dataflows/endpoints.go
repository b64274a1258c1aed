package dataflows

import (
	"fmt"
	"net/url"
	"strings"
)

// SymbolRule says how an endpoint treats --symbol.
type SymbolRule int

const (
	// SymbolRequired embeds a ticker such as AAPL.US in the path.
	SymbolRequired SymbolRule = iota
	// SymbolExchange embeds an exchange code such as US or LSE in the path.
	SymbolExchange
	// SymbolCountry embeds an ISO country code such as USA in the path.
	SymbolCountry
	// SymbolOptional sends the symbol as a query parameter when given.
	SymbolOptional
	// SymbolUnused ignores the symbol.
	SymbolUnused
)

func (r SymbolRule) String() string {
	switch r {
	case SymbolRequired:
		return "ticker"
	case SymbolExchange:
		return "exchange code"
	case SymbolCountry:
		return "country code"
	case SymbolOptional:
		return "optional"
	case SymbolUnused:
		return "none"
	default:
		return fmt.Sprintf("SymbolRule(%d)", int(r))
	}
}

// InPath reports whether the symbol is part of the URL path.
func (r SymbolRule) InPath() bool {
	return r == SymbolRequired || r == SymbolExchange || r == SymbolCountry
}

// Endpoint describes one remote operation.
type Endpoint struct {
	Name  string
	Group string
	// Path may contain a single {symbol} placeholder.
	Path   string
	Symbol SymbolRule
	// SymbolParam is the query key used by SymbolOptional endpoints.
	SymbolParam string
	// NeedsFunction is set for the technical indicator endpoint.
	NeedsFunction bool
}

const symbolPlaceholder = "{symbol}"

// Endpoint groups, in help order.
const (
	GroupMarketData   = "Market Data"
	GroupFundamentals = "Fundamentals"
	GroupCorporate    = "Corporate"
	GroupTechnical    = "Technical"
	GroupOptions      = "Options"
	GroupMacro        = "Macro"
	GroupCalendar     = "Calendar"
	GroupExchange     = "Exchange"
	GroupScreening    = "Screening"
)

var groupOrder = []string{
	GroupMarketData,
	GroupFundamentals,
	GroupCorporate,
	GroupTechnical,
	GroupOptions,
	GroupMacro,
	GroupCalendar,
	GroupExchange,
	GroupScreening,
}

var endpoints = []Endpoint{
	{Name: "eod", Group: GroupMarketData, Path: "/eod/{symbol}", Symbol: SymbolRequired},
	{Name: "intraday", Group: GroupMarketData, Path: "/intraday/{symbol}", Symbol: SymbolRequired},
	{Name: "real-time", Group: GroupMarketData, Path: "/real-time/{symbol}", Symbol: SymbolRequired},
	{Name: "eod-bulk-last-day", Group: GroupMarketData, Path: "/eod-bulk-last-day/{symbol}", Symbol: SymbolExchange},

	{Name: "fundamentals", Group: GroupFundamentals, Path: "/fundamentals/{symbol}", Symbol: SymbolRequired},
	{Name: "news", Group: GroupFundamentals, Path: "/news", Symbol: SymbolOptional, SymbolParam: "s"},
	{Name: "sentiment", Group: GroupFundamentals, Path: "/sentiments", Symbol: SymbolOptional, SymbolParam: "s"},
	{Name: "insider-transactions", Group: GroupFundamentals, Path: "/insider-transactions", Symbol: SymbolOptional, SymbolParam: "code"},

	{Name: "dividends", Group: GroupCorporate, Path: "/div/{symbol}", Symbol: SymbolRequired},
	{Name: "splits", Group: GroupCorporate, Path: "/splits/{symbol}", Symbol: SymbolRequired},

	{Name: "technical", Group: GroupTechnical, Path: "/technical/{symbol}", Symbol: SymbolRequired, NeedsFunction: true},

	{Name: "options", Group: GroupOptions, Path: "/options/{symbol}", Symbol: SymbolRequired},

	{Name: "macro-indicator", Group: GroupMacro, Path: "/macro-indicator/{symbol}", Symbol: SymbolCountry},
	{Name: "economic-events", Group: GroupMacro, Path: "/economic-events", Symbol: SymbolUnused},

	{Name: "calendar/earnings", Group: GroupCalendar, Path: "/calendar/earnings", Symbol: SymbolUnused},
	{Name: "calendar/ipos", Group: GroupCalendar, Path: "/calendar/ipos", Symbol: SymbolUnused},
	{Name: "calendar/splits", Group: GroupCalendar, Path: "/calendar/splits", Symbol: SymbolUnused},

	{Name: "exchange-symbol-list", Group: GroupExchange, Path: "/exchange-symbol-list/{symbol}", Symbol: SymbolExchange},
	{Name: "exchanges-list", Group: GroupExchange, Path: "/exchanges-list", Symbol: SymbolUnused},
	{Name: "exchanges-details", Group: GroupExchange, Path: "/exchanges/{symbol}", Symbol: SymbolRequired},
	// Index constituents are served by the fundamentals endpoint.
	{Name: "index-components", Group: GroupExchange, Path: "/fundamentals/{symbol}", Symbol: SymbolRequired},

	{Name: "screener", Group: GroupScreening, Path: "/screener", Symbol: SymbolUnused},
}

var endpointIndex = func() map[string]Endpoint {
	m := make(map[string]Endpoint, len(endpoints))
	for _, ep := range endpoints {
		if _, dup := m[ep.Name]; dup {
			panic("dataflows: duplicate endpoint " + ep.Name)
		}
		m[ep.Name] = ep
	}
	return m
}()

// Endpoints returns the supported endpoints in help order.
func Endpoints() []Endpoint {
	out := make([]Endpoint, len(endpoints))
	copy(out, endpoints)
	return out
}

// EndpointNames returns the names of all supported endpoints.
func EndpointNames() []string {
	names := make([]string, 0, len(endpoints))
	for _, ep := range endpoints {
		names = append(names, ep.Name)
	}
	return names
}

// Groups returns the group names in help order.
func Groups() []string {
	out := make([]string, len(groupOrder))
	copy(out, groupOrder)
	return out
}

// LookupEndpoint finds an endpoint by name.
func LookupEndpoint(name string) (Endpoint, bool) {
	ep, ok := endpointIndex[name]
	return ep, ok
}

// Route resolves an endpoint name to its URL path.
func Route(name, symbol, function string) (string, error) {
	ep, ok := LookupEndpoint(name)
	if !ok {
		return "", usageErrorf("unsupported endpoint: %q", name)
	}
	return ep.BuildPath(symbol, function)
}

// BuildPath validates symbol and function against the endpoint rules and
// returns the path.
func (ep Endpoint) BuildPath(symbol, function string) (string, error) {
	symbol = strings.TrimSpace(symbol)

	if !ep.Symbol.InPath() {
		return ep.Path, nil
	}
	if symbol == "" {
		return "", usageErrorf("--symbol is required for endpoint=%s", ep.Name)
	}
	if ep.NeedsFunction && strings.TrimSpace(function) == "" {
		return "", usageErrorf("--function is required for endpoint=%s (e.g., sma, ema, rsi)", ep.Name)
	}
	return strings.Replace(ep.Path, symbolPlaceholder, url.PathEscape(symbol), 1), nil
}
