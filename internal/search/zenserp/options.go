package zenserp

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Option - настройка Client, применяется в New.
type Option func(*Client) error

// WithHTTPClient подменяет http.Client; Config.Timeout тогда не используется.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("http client is nil")
		}
		c.client = hc
		return nil
	}
}

// WithDebugLogging включает debug-лог каждого запроса и ответа. Заголовок apikey
// не логируется. Обертка ставится после всех опций на копию http.Client,
// поэтому порядок с WithHTTPClient не важен и клиент вызывающего не меняется.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.debug = enabled
		return nil
	}
}

func withDebugTransport(hc *http.Client, logger *zap.Logger) *http.Client {
	wrapped := *hc
	base := wrapped.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	wrapped.Transport = &debugTransport{base: base, logger: logger}
	return &wrapped
}

type debugTransport struct {
	base   http.RoundTripper
	logger *zap.Logger
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	dt.logger.Debug("http request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Bool("has_apikey", req.Header.Get("apikey") != ""),
	)

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		dt.logger.Debug("http request failed",
			zap.String("url", req.URL.String()),
			zap.Error(err),
		)
		return nil, err
	}

	dt.logger.Debug("http response",
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Int64("content_length", resp.ContentLength),
		zap.Duration("duration", time.Since(start)),
	)
	return resp, nil
}
