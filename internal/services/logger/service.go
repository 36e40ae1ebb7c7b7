package logger

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const maxSnippet = 512

type upstreamObserver interface {
	ObserveUpstream(host string, status int, d time.Duration)
}

// RoundTripper logs every outbound request and its response body snippet.
type RoundTripper struct {
	Logger   *zap.Logger
	Proxy    http.RoundTripper
	Observer upstreamObserver
}

func NewRoundTripper(logger *zap.Logger, observer upstreamObserver) *RoundTripper {
	return &RoundTripper{
		Logger:   logger,
		Proxy:    http.DefaultTransport,
		Observer: observer,
	}
}

func (l *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := l.Proxy.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		l.observe(req, 0, duration)
		l.Logger.Error("HTTP request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}
	l.observe(req, resp.StatusCode, duration)

	bodyBytes, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		l.Logger.Error("Failed to read response body",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	resp.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	snippet := bodyBytes
	if len(snippet) > maxSnippet {
		snippet = snippet[:maxSnippet]
	}

	l.Logger.Info("HTTP request completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.ByteString("body_snipped", snippet),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

func (l *RoundTripper) observe(req *http.Request, status int, d time.Duration) {
	if l.Observer != nil {
		l.Observer.ObserveUpstream(req.URL.Host, status, d)
	}
}
