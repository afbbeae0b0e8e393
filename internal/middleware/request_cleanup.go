package middleware

import (
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// MaxDrainBytes bounds how much of an unread request body is discarded.
// The training API only accepts small JSON bodies; anything larger is closed without reading it all.
const MaxDrainBytes = 64 << 10

// DrainAndCloseRequest drains what the handler left unread of the request body, up to MaxDrainBytes,
// and closes it so the connection can be reused.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil || r.Body == http.NoBody {
				return
			}
			drained, err := io.CopyN(io.Discard, r.Body, MaxDrainBytes)
			if err == nil {
				log.Tracef("request body of %s %s exceeds %d bytes, closing it undrained", r.Method, r.URL.Path, drained)
			}
			_ = r.Body.Close()
		})
	}
}
