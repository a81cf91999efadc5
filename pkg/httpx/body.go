package httpx

import (
	"io"
	"net/http"
)

// maxDrain caps how much of an unread body we'll read to reuse the connection.
const maxDrain = 64 << 10

// DrainAndClose discards what is left of the response body (up to a limit)
// and closes it, so the underlying connection can go back to the pool.
// Safe to call with a nil response.
func DrainAndClose(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))
	_ = resp.Body.Close()
}
