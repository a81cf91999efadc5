package blindnet_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/blindnet/pkg/blindnet"
	"github.com/aussiebroadwan/blindnet/pkg/cryptox"
	"github.com/aussiebroadwan/blindnet/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const testAppID = "3c6a7f0e-app"

// newTestKey returns a fresh application key in the base64 form the
// dashboard hands out, plus its public half.
func newTestKey(t *testing.T) (string, ed25519.PublicKey) {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return cryptox.EncodeEd25519Key(priv), pub
}

// fixedClock returns a clock frozen on a whole second, so exp claims can be
// compared exactly.
func fixedClock() func() time.Time {
	now := time.Now().Truncate(time.Second)
	return func() time.Time { return now }
}

type recordedRequest struct {
	Method      string
	Path        string
	Auth        string
	ContentType string
	RequestID   string
	BodyLen     int64
}

// fakeService answers with the scripted statuses in order, repeating the
// last one once the script runs out.
type fakeService struct {
	mu       sync.Mutex
	statuses []int
	requests []recordedRequest
}

func newFakeService(t *testing.T, statuses ...int) (*fakeService, *httptest.Server) {
	t.Helper()

	f := &fakeService{statuses: statuses}
	srv := httptest.NewServer(http.HandlerFunc(f.serveHTTP))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeService) serveHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, recordedRequest{
		Method:      r.Method,
		Path:        r.URL.EscapedPath(),
		Auth:        r.Header.Get("Authorization"),
		ContentType: r.Header.Get("Content-Type"),
		RequestID:   r.Header.Get(slogx.RequestIDHeader),
		BodyLen:     r.ContentLength,
	})

	status := http.StatusOK
	if n := len(f.requests); n <= len(f.statuses) {
		status = f.statuses[n-1]
	} else if len(f.statuses) > 0 {
		status = f.statuses[len(f.statuses)-1]
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{}`))
}

func (f *fakeService) Requests() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func newTestClient(t *testing.T, endpoint string, opts ...blindnet.Option) (*blindnet.Client, ed25519.PublicKey) {
	t.Helper()

	key, pub := newTestKey(t)
	opts = append([]blindnet.Option{
		blindnet.WithAPIEndpoint(endpoint),
		blindnet.WithLogger(slogx.Discard()),
	}, opts...)

	client, err := blindnet.Init(key, testAppID, opts...)
	require.NoError(t, err)
	return client, pub
}
