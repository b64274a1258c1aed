package dataflows

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/go-resty/resty/v2"
)

// Transport performs a single GET and buffers the response. An error is
// returned only when no response was received; HTTP error statuses are
// reported through Response.StatusCode.
type Transport interface {
	Get(ctx context.Context, rawURL string) (*Response, error)
}

// RestyTransport is the production Transport.
type RestyTransport struct {
	client *resty.Client
}

var _ Transport = (*RestyTransport)(nil)

// NewRestyTransport creates a transport with retries disabled. Timeouts come
// from the request context.
func NewRestyTransport(logger *slog.Logger) *RestyTransport {
	return newRestyTransport(resty.New(), logger)
}

// NewRestyTransportWithClient wraps an existing http.Client, e.g. an
// httptest server client.
func NewRestyTransportWithClient(hc *http.Client, logger *slog.Logger) *RestyTransport {
	return newRestyTransport(resty.NewWithClient(hc), logger)
}

func newRestyTransport(client *resty.Client, logger *slog.Logger) *RestyTransport {
	if logger == nil {
		logger = slog.Default()
	}
	client.
		SetHeader("Accept", "application/json").
		SetRetryCount(0).
		SetLogger(&restyLogger{logger: logger})

	return &RestyTransport{client: client}
}

func (t *RestyTransport) Get(ctx context.Context, rawURL string) (*Response, error) {
	resp, err := t.client.R().
		SetContext(ctx).
		Get(rawURL)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Body:       resp.Body(),
	}, nil
}

var tokenParam = regexp.MustCompile(`(api_token=)[^&\s"']*`)

// scrubToken hides the api_token query value in free-form text.
func scrubToken(s string) string {
	return tokenParam.ReplaceAllString(s, "${1}"+RedactedPlaceholder)
}

// restyLogger routes resty's internal messages into slog. Resty may print
// request URLs, so the token is scrubbed first. Errors are demoted to debug
// because Client.Fetch reports them.
type restyLogger struct {
	logger *slog.Logger
}

func (l *restyLogger) Errorf(format string, v ...interface{}) {
	l.logger.Debug(scrubToken(fmt.Sprintf(format, v...)), "component", "resty", "severity", "error")
}

func (l *restyLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn(scrubToken(fmt.Sprintf(format, v...)), "component", "resty")
}

func (l *restyLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug(scrubToken(fmt.Sprintf(format, v...)), "component", "resty")
}
