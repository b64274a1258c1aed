package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyike/eodhd-cli/internal/config"
	"github.com/dyike/eodhd-cli/internal/dataflows"
)

const fakeToken = "fake-token-5f2c9a"

type recordingTransport struct {
	urls []string
	resp *dataflows.Response
	err  error
}

func (r *recordingTransport) Get(ctx context.Context, rawURL string) (*dataflows.Response, error) {
	r.urls = append(r.urls, rawURL)
	if r.err != nil {
		return nil, r.err
	}
	return r.resp, nil
}

func ok(body string) *recordingTransport {
	return &recordingTransport{resp: &dataflows.Response{StatusCode: 200, Status: "200 OK", Body: []byte(body)}}
}

type result struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, tokens config.TokenSource, tr dataflows.Transport, args ...string) result {
	t.Helper()

	var out, errOut bytes.Buffer
	cfg := config.FromEnv(func(string) (string, bool) { return "", false })
	app := &App{Out: &out, Err: &errOut, Config: cfg, Tokens: tokens, Transport: tr}

	code := Run(context.Background(), app, args)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func TestRunPrettyPrintsJSON(t *testing.T) {
	tr := ok(`{"b":1,"a":2}`)
	res := run(t, config.StaticToken(fakeToken), tr, "--endpoint", "eod", "--symbol", "AAPL.US")

	assert.Equal(t, ExitOK, res.code)
	assert.Equal(t, "{\n  \"a\": 2,\n  \"b\": 1\n}\n", res.stdout)
	assert.Empty(t, res.stderr)
	require.Len(t, tr.urls, 1)
}

func TestRunRaw(t *testing.T) {
	res := run(t, config.StaticToken(fakeToken), ok(`{"b":1,"a":2}`), "--endpoint", "eod", "--symbol", "AAPL.US", "--raw")

	assert.Equal(t, ExitOK, res.code)
	assert.Equal(t, "{\"b\":1,\"a\":2}\n", res.stdout)
}

func TestRunNonJSONBodyIsSuccess(t *testing.T) {
	res := run(t, config.StaticToken(fakeToken), ok("hello"), "--endpoint", "exchanges-list")

	assert.Equal(t, ExitOK, res.code)
	assert.Equal(t, "hello\n", res.stdout)
	assert.Empty(t, res.stderr)
}

func TestRunMissingTokenSkipsNetwork(t *testing.T) {
	tr := ok(`{}`)
	res := run(t, &config.EnvToken{Name: "EODHD_API_TOKEN", Lookup: func(string) (string, bool) { return "", false }}, tr,
		"--endpoint", "eod", "--symbol", "AAPL.US")

	assert.Equal(t, ExitUsage, res.code)
	assert.Empty(t, tr.urls)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "EODHD_API_TOKEN")
}

func TestRunUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no endpoint", nil, "--endpoint is required"},
		{"unknown endpoint", []string{"--endpoint", "quotes"}, `"quotes"`},
		{"missing symbol", []string{"--endpoint", "fundamentals"}, "endpoint=fundamentals"},
		{"technical without function", []string{"--endpoint", "technical", "--symbol", "AAPL.US"}, "--function"},
		{"bad integer", []string{"--endpoint", "eod", "--symbol", "AAPL.US", "--limit", "ten"}, "limit"},
		{"unknown flag", []string{"--endpoint", "eod", "--nope"}, "nope"},
		{"positional argument", []string{"AAPL.US", "--endpoint", "eod"}, "unexpected argument"},
		{"bad base url", []string{"--endpoint", "screener", "--base-url", "eodhd.com"}, "base url"},
		{"bad timeout", []string{"--endpoint", "screener", "--timeout", "0"}, "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := ok(`{}`)
			res := run(t, config.StaticToken(fakeToken), tr, tt.args...)

			assert.Equal(t, ExitUsage, res.code)
			assert.Empty(t, tr.urls, "no network call")
			assert.Empty(t, res.stdout)
			assert.Contains(t, res.stderr, tt.want)
		})
	}
}

func TestRunTechnicalWithFunction(t *testing.T) {
	tr := ok(`[]`)
	res := run(t, config.StaticToken(fakeToken), tr,
		"--endpoint", "technical", "--symbol", "AAPL.US", "--function", "sma", "--period", "50")
	require.Equal(t, ExitOK, res.code, res.stderr)

	require.Len(t, tr.urls, 1)
	u, err := url.Parse(tr.urls[0])
	require.NoError(t, err)
	assert.Equal(t, "/api/technical/AAPL.US", u.Path)
	assert.Equal(t, "sma", u.Query().Get("function"))
	assert.Equal(t, "50", u.Query().Get("period"))
	assert.Equal(t, fakeToken, u.Query().Get("api_token"))
}

func TestRunPassesOptionalIntsOnlyWhenSet(t *testing.T) {
	tr := ok(`[]`)
	res := run(t, config.StaticToken(fakeToken), tr, "--endpoint", "news", "--symbol", "AAPL.US", "--offset", "0")
	require.Equal(t, ExitOK, res.code, res.stderr)

	u, err := url.Parse(tr.urls[0])
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "0", q.Get("offset"))
	assert.False(t, q.Has("limit"))
	assert.False(t, q.Has("period"))
	assert.Equal(t, "AAPL.US", q.Get("s"))
	assert.Equal(t, "/api/news", u.Path)
}

func TestRunHTTP404(t *testing.T) {
	tr := &recordingTransport{resp: &dataflows.Response{StatusCode: 404, Status: "404 Not Found", Body: []byte("Ticker Not Found.")}}
	res := run(t, config.StaticToken(fakeToken), tr, "--endpoint", "eod", "--symbol", "NOPE.US")

	assert.Equal(t, ExitTransport, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "404")
	assert.Contains(t, res.stderr, "Not Found")
	assert.Contains(t, res.stderr, "Ticker Not Found.")
	assert.Contains(t, res.stderr, "api_token=***")
	assert.NotContains(t, res.stderr, fakeToken)
}

func TestRunConnectionFailure(t *testing.T) {
	full := "https://eodhd.com/api/eod/AAPL.US?api_token=" + fakeToken + "&fmt=json"
	tr := &recordingTransport{err: &url.Error{Op: "Get", URL: full, Err: errors.New("dial tcp: lookup eodhd.com: no such host")}}
	res := run(t, config.StaticToken(fakeToken), tr, "--endpoint", "eod", "--symbol", "AAPL.US")

	assert.Equal(t, ExitTransport, res.code)
	assert.Contains(t, res.stderr, "Request failed: dial tcp: lookup eodhd.com: no such host")
	assert.Contains(t, res.stderr, "URL: https://eodhd.com/api/eod/AAPL.US?api_token=***&fmt=json")
	assert.NotContains(t, res.stderr, fakeToken)
}

func TestRunDebugLogsRedactedURL(t *testing.T) {
	res := run(t, config.StaticToken(fakeToken), ok(`{}`), "--endpoint", "eod", "--symbol", "AAPL.US", "--debug")

	assert.Equal(t, ExitOK, res.code)
	assert.Contains(t, res.stderr, "msg=request")
	assert.Contains(t, res.stderr, "msg=response")
	assert.Contains(t, res.stderr, "api_token=***")
	assert.NotContains(t, res.stderr, fakeToken)
}

func TestRunAgainstHTTPServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_token") != fakeToken {
			http.Error(w, "Unauthenticated", http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "/api/calendar/earnings", r.URL.Path)
		assert.Equal(t, "2025-01-01", r.URL.Query().Get("from"))
		_, _ = fmt.Fprint(w, `{"type":"Earnings","earnings":[]}`)
	}))
	defer server.Close()

	res := run(t, config.StaticToken(fakeToken), nil,
		"--endpoint", "calendar/earnings", "--from-date", "2025-01-01", "--base-url", server.URL+"/api/")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Equal(t, "{\n  \"earnings\": [],\n  \"type\": \"Earnings\"\n}\n", res.stdout)

	res = run(t, config.StaticToken("wrong-token"), nil,
		"--endpoint", "calendar/earnings", "--base-url", server.URL+"/api")
	assert.Equal(t, ExitTransport, res.code)
	assert.Contains(t, res.stderr, "HTTP Error 401: Unauthorized")
	assert.NotContains(t, res.stderr, "wrong-token")
}

func TestRunTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer server.Close()
	defer close(release)

	res := run(t, config.StaticToken(fakeToken), nil,
		"--endpoint", "exchanges-list", "--base-url", server.URL, "--timeout", "1")
	assert.Equal(t, ExitTransport, res.code)
	assert.Contains(t, res.stderr, "timed out after 1s")
}

func TestEndpointsCommand(t *testing.T) {
	res := run(t, nil, nil, "endpoints")

	assert.Equal(t, ExitOK, res.code)
	for _, name := range dataflows.EndpointNames() {
		assert.Contains(t, res.stdout, name)
	}
}

func TestVersionCommand(t *testing.T) {
	res := run(t, nil, nil, "version")
	assert.Equal(t, ExitOK, res.code)
	assert.Equal(t, "eodhd v"+Version+"\n", res.stdout)
}

func TestHelpListsEndpoints(t *testing.T) {
	res := run(t, nil, nil, "--help")
	assert.Equal(t, ExitOK, res.code)
	assert.Contains(t, res.stdout, "Supported endpoints:")
	assert.Contains(t, res.stdout, "technical (requires --function)")
	assert.True(t, strings.Contains(res.stdout, "--base-url"))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitUsage, ExitCode(dataflows.NewUsageError("bad")))
	assert.Equal(t, ExitUsage, ExitCode(fmt.Errorf("wrapped: %w", &dataflows.ConfigError{Err: config.ErrMissingToken})))
	assert.Equal(t, ExitTransport, ExitCode(&dataflows.TransportError{StatusCode: 500, Reason: "Internal Server Error"}))
	assert.Equal(t, ExitTransport, ExitCode(errors.New("write output: broken pipe")))
}
