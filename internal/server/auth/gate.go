package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophcatalog/internal/common"
	"github.com/dmitrijs2005/gophcatalog/internal/httpx"
	"github.com/dmitrijs2005/gophcatalog/internal/logging"
	"github.com/dmitrijs2005/gophcatalog/internal/server/models"
	"github.com/google/uuid"
)

const bearerPrefix = "Bearer "

// Gate returns middleware admitting only requests that carry a valid bearer
// access token. With a non-empty required role the caller must also hold that
// role; the role is looked at only after the token itself checks out.
// Admitted requests get an Identity in their context. The gate never touches
// the database.
func Gate(v Verifier, log logging.Logger, required models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := authorize(r, v, required, time.Now())
			if err != nil {
				log.Debug(r.Context(), "request rejected by gate", "path", r.URL.Path, "error", err)
				httpx.WriteError(w, r, log, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireAuth admits any authenticated user.
func RequireAuth(v Verifier, log logging.Logger) func(http.Handler) http.Handler {
	return Gate(v, log, "")
}

// RequireAdmin admits authenticated admins only.
func RequireAdmin(v Verifier, log logging.Logger) func(http.Handler) http.Handler {
	return Gate(v, log, models.RoleAdmin)
}

func authorize(r *http.Request, v Verifier, required models.Role, now time.Time) (Identity, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return Identity{}, common.NewAuthenticationError("Missing authorization header")
	}

	if !strings.HasPrefix(header, bearerPrefix) {
		return Identity{}, common.NewAuthenticationError("Invalid authorization format")
	}

	claims, err := v.Verify(strings.TrimPrefix(header, bearerPrefix), now)
	if err != nil {
		return Identity{}, common.NewAuthenticationError("Invalid or expired token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, common.NewAuthenticationError("Invalid user ID in token")
	}

	if required != "" && claims.Role != required {
		return Identity{}, common.NewAuthorizationError("Insufficient permissions")
	}

	return Identity{UserID: userID, Username: claims.Username, Role: claims.Role}, nil
}
