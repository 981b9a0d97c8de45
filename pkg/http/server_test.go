package http

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	applogger "RugGuard/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routes func(e *echo.Echo)

func (r routes) RegisterRoutes(e *echo.Echo) { r(e) }

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func startServer(t *testing.T, opts ...ServerOption) string {
	t.Helper()
	h := routes(func(e *echo.Echo) {
		e.POST("/swap", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
		e.GET("/boom", func(echo.Context) error { panic("kaboom") })
	})
	opts = append([]ServerOption{WithHost("127.0.0.1"), WithPort(0)}, opts...)
	s := NewServer(h, opts...)
	require.NoError(t, s.Start())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Stop(ctx)
	})
	return "http://" + s.Addr().String()
}

func post(t *testing.T, url string, header map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp
}

func TestServerRateLimitIgnoresForwardingHeaders(t *testing.T) {
	base := startServer(t, WithRateLimit(2, 0.001))

	allowed := 0
	for i := 0; i < 10; i++ {
		resp := post(t, base+"/swap", map[string]string{
			echo.HeaderXForwardedFor: fmt.Sprintf("1.2.3.%d", i),
			echo.HeaderXRealIP:       fmt.Sprintf("5.6.7.%d", i),
		})
		if resp.StatusCode == http.StatusNoContent {
			allowed++
		} else {
			assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
		}
	}
	assert.Equal(t, 2, allowed)
}

func TestServerRateLimitTrustsConfiguredProxies(t *testing.T) {
	_, loopback, err := net.ParseCIDR("127.0.0.0/8")
	require.NoError(t, err)
	base := startServer(t, WithRateLimit(1, 0.001), WithTrustedProxies(loopback))

	for i := 0; i < 5; i++ {
		resp := post(t, base+"/swap", map[string]string{
			echo.HeaderXForwardedFor: fmt.Sprintf("203.0.113.%d", i),
		})
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	}
	resp := post(t, base+"/swap", map[string]string{echo.HeaderXForwardedFor: "203.0.113.0"})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestServerThrottledResponseIsReadableCrossOrigin(t *testing.T) {
	base := startServer(t, WithRateLimit(1, 0.001), WithCORS(true))
	origin := map[string]string{echo.HeaderOrigin: "https://wallet.example"}

	require.Equal(t, http.StatusNoContent, post(t, base+"/swap", origin).StatusCode)
	resp := post(t, base+"/swap", origin)

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "https://wallet.example", resp.Header.Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, echo.HeaderRetryAfter, resp.Header.Get(echo.HeaderAccessControlExposeHeaders))
	assert.Equal(t, "1", resp.Header.Get(echo.HeaderRetryAfter))
}

func TestServerLogsAndCountsPanics(t *testing.T) {
	var logs syncBuffer
	reg := prometheus.NewRegistry()
	base := startServer(t,
		WithLogger(applogger.NewWriter(&logs, "debug")),
		WithMetrics("/metrics", reg, reg),
	)

	resp, err := http.Get(base + "/boom")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	require.Eventually(t, func() bool {
		return strings.Contains(logs.String(), `"message":"http request"`)
	}, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, logs.String(), "kaboom")
	assert.Contains(t, logs.String(), `"status":500`)

	require.Eventually(t, func() bool {
		n, err := testutil.GatherAndCount(reg, "http_requests_total")
		return err == nil && n == 1
	}, 2*time.Second, 10*time.Millisecond)
}
