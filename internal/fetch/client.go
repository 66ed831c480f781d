package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/prtracker/internal/telemetry/metrics"
	"github.com/2beens/prtracker/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type credentialReader interface {
	Get(ctx context.Context) (token string, ok bool)
}

// validator is implemented by response schemas that need more than JSON decoding.
type validator interface {
	Validate() error
}

type Client struct {
	baseURL        string
	httpClient     *http.Client
	credentials    credentialReader
	metricsManager *metrics.Manager
}

func NewClient(
	baseURL string,
	httpClient *http.Client,
	credentials credentialReader,
	metricsManager *metrics.Manager,
) *Client {
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     httpClient,
		credentials:    credentials,
		metricsManager: metricsManager,
	}
}

func NewTracedHttpClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   timeout,
	}
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Do sends one request and decodes a 2xx body into out (when out is not nil).
// Every failure comes back as *NetworkError, *HttpError or *ParseError.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "fetch.request")
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.path", path),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "ok")
		}
	}()

	var reqBody io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return &NetworkError{Err: fmt.Errorf("marshal request body: %w", err)}
		}
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &NetworkError{Err: fmt.Errorf("new request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.credentials.Get(ctx); ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
		span.SetAttributes(attribute.Bool("auth.bearer", true))
	}

	if c.metricsManager != nil {
		c.metricsManager.GaugeRequests.Inc()
		defer c.metricsManager.GaugeRequests.Dec()
	}

	start := time.Now()
	log.Tracef("--> [%s] %s", method, path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(method, path, "none", start)
		log.Errorf("request [%s] %s: %s", method, path, err)
		return &NetworkError{Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Warnf("close response body [%s] %s: %s", method, path, err)
		}
	}()

	status := strconv.Itoa(resp.StatusCode)
	c.observe(method, path, status, start)
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Errorf("read response [%s] %s: %s", method, path, err)
		return &NetworkError{Err: fmt.Errorf("read response body: %w", err)}
	}
	log.Tracef("<-- [%s] %s %d: %s", method, path, resp.StatusCode, respBytes)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newHttpError(resp.StatusCode, respBytes)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBytes, out); err != nil {
		log.Errorf("unmarshal response [%s] %s: %s", method, path, err)
		return &ParseError{Err: err}
	}
	if v, ok := out.(validator); ok {
		if err := v.Validate(); err != nil {
			return &ParseError{Err: err}
		}
	}

	return nil
}

func newHttpError(status int, respBytes []byte) *HttpError {
	httpErr := &HttpError{
		Status:  status,
		Message: http.StatusText(status),
	}

	var msgResp struct {
		Message *string `json:"message"`
	}
	if err := json.Unmarshal(respBytes, &msgResp); err == nil && msgResp.Message != nil {
		httpErr.Message = *msgResp.Message
	} else if text := strings.TrimSpace(string(respBytes)); text != "" && !strings.HasPrefix(text, "{") {
		// http.Error style plain text bodies
		httpErr.Message = text
	}

	return httpErr
}

func (c *Client) observe(method, path, status string, start time.Time) {
	if c.metricsManager == nil {
		return
	}
	c.metricsManager.CounterRequests.WithLabelValues(method, status).Inc()
	c.metricsManager.HistogramRequestDuration.
		WithLabelValues(routeLabel(path), method, status).
		Observe(time.Since(start).Seconds())
}

// routeLabel keeps only the first path segment, so record keys never become label values.
func routeLabel(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	first, _, _ := strings.Cut(trimmed, "/")
	return "/" + first
}
