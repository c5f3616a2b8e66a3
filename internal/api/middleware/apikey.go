package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"os"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/ndewijer/Money-Manager-Backend/internal/api/response"
)

// TimeTokenTTL is how long a time token stays valid after it was issued.
const TimeTokenTTL = 5 * time.Minute

// APIKeyMiddleware guards internal job endpoints.
//
// Requests must carry X-API-Key equal to INTERNAL_API_KEY and an
// X-Time-Token issued by GenerateTimeToken within TimeTokenTTL. The key is
// read on every request so it can be rotated without a restart.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := os.Getenv("INTERNAL_API_KEY")
		if apiKey == "" {
			response.RespondError(w, http.StatusInternalServerError, "authentication error", "Authentication not loaded")
			return
		}

		provided := r.Header.Get("X-API-Key")
		if provided == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		token := r.Header.Get("X-Time-Token")
		if token == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing Time token")
			return
		}
		if !verifyTimeToken(apiKey, token) {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Time token is invalid or expired")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GenerateTimeToken issues a fernet token for apiKey stamped with the
// current time. It returns an empty string if encryption fails.
func GenerateTimeToken(apiKey string) string {
	key := deriveKey(apiKey)
	tok, err := fernet.EncryptAndSign([]byte(time.Now().UTC().Format(time.RFC3339)), key)
	if err != nil {
		return ""
	}
	return string(tok)
}

func verifyTimeToken(apiKey, token string) bool {
	msg := fernet.VerifyAndDecrypt([]byte(token), TimeTokenTTL, []*fernet.Key{deriveKey(apiKey)})
	return msg != nil
}

// deriveKey turns an API key of any length into a fernet key.
func deriveKey(apiKey string) *fernet.Key {
	sum := sha256.Sum256([]byte(apiKey))
	key := fernet.Key(sum)
	return &key
}
