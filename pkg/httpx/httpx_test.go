package httpx_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/blindnet/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestRateLimitConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  httpx.RateLimitConfig
		ok   bool
	}{
		{"valid", httpx.RateLimitConfig{RequestsPerWindow: 5, Window: time.Second, Burst: 1}, true},
		{"zero requests", httpx.RateLimitConfig{Window: time.Second, Burst: 1}, false},
		{"zero window", httpx.RateLimitConfig{RequestsPerWindow: 5, Burst: 1}, false},
		{"zero burst", httpx.RateLimitConfig{RequestsPerWindow: 5, Window: time.Second}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, httpx.ErrInvalidRateLimit)
			}
		})
	}
}

func TestNewLimiter(t *testing.T) {
	l, err := httpx.NewLimiter(httpx.RateLimitConfig{RequestsPerWindow: 60, Window: time.Minute, Burst: 3})
	require.NoError(t, err)
	require.InDelta(t, 1.0, float64(l.Limit()), 0.0001)
	require.Equal(t, 3, l.Burst())
}

func TestRateLimitedTransport(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	// One request per hour, burst of one: the second call can't get through
	transport, err := httpx.NewRateLimitedTransport(nil, httpx.RateLimitConfig{
		RequestsPerWindow: 1,
		Window:            time.Hour,
		Burst:             1,
	})
	require.NoError(t, err)
	client := &http.Client{Transport: transport}

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	httpx.DrainAndClose(resp)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	_, err = client.Do(req)
	require.Error(t, err)
	require.Equal(t, int32(1), hits.Load())
}

type trackingBody struct {
	io.Reader
	closed bool
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}

func TestDrainAndClose(t *testing.T) {
	body := &trackingBody{Reader: strings.NewReader("leftover")}
	httpx.DrainAndClose(&http.Response{Body: body})
	require.True(t, body.closed)

	n, _ := body.Read(make([]byte, 1))
	require.Zero(t, n)

	// nil safe
	httpx.DrainAndClose(nil)
	httpx.DrainAndClose(&http.Response{})
}
