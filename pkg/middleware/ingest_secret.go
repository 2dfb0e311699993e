package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/ratesapi-nz/rates-api/pkg/apiErrors"
	"github.com/ratesapi-nz/rates-api/pkg/log"
)

// IngestSecretHeader carries the shared ingestion secret on operational routes.
const IngestSecretHeader = "X-Ingest-Secret"

// IngestSecret gates a route behind the configured ingest secret. This is the
// only authentication the write side has; the read API stays public.
func IngestSecret(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				log.ForContext(r.Context()).Error("ingest secret is not configured; refusing operational request")
				apiErrors.Write(w, apiErrors.New(apiErrors.ErrInvalidIngestSecret, "ingest secret is not configured"))
				return
			}

			candidate := r.Header.Get(IngestSecretHeader)
			if subtle.ConstantTimeCompare([]byte(candidate), []byte(secret)) != 1 {
				log.ForContext(r.Context()).WithField("path", r.URL.Path).Warn("rejected request with invalid ingest secret")
				apiErrors.Write(w, apiErrors.New(apiErrors.ErrInvalidIngestSecret, "invalid ingest secret"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
