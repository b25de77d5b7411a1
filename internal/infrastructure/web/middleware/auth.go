package middleware

import (
	"encoding/json"
	"mandi-service/internal/application/dto"
	"mandi-service/internal/domain/interfaces"
	"mandi-service/internal/infrastructure/auth"
	"mandi-service/internal/infrastructure/logging"
	"net/http"
	"strconv"
	"strings"
)

// AuthMiddleware checks the bearer token on protected routes
type AuthMiddleware struct {
	tokens interfaces.TokenManager
}

// NewAuthMiddleware creates a new auth middleware instance
func NewAuthMiddleware(tokens interfaces.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handler rejects requests without a valid bearer token and stores the caller in the context
func (am *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			am.respondWithAuthError(w, r, "No token", "TOKEN_MISSING")
			return
		}

		identity, err := am.tokens.Verify(token)
		if err != nil {
			logging.Debug(r.Context(), "Bearer token rejected", logging.Fields{logging.FieldError: err.Error()})
			am.respondWithAuthError(w, r, "Invalid token", "TOKEN_INVALID")
			return
		}

		ctx := auth.WithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// respondWithAuthError envía una respuesta de error de autenticación
func (am *AuthMiddleware) respondWithAuthError(w http.ResponseWriter, r *http.Request, message, code string) {
	logging.Security().AuthenticationFailed(r.Context(), logging.GetRemoteIP(r.Context()), code)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	w.WriteHeader(http.StatusUnauthorized)

	response := dto.ErrorResponse{
		Error:   code,
		Message: message,
		Code:    strconv.Itoa(http.StatusUnauthorized),
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.Error(r.Context(), "Error encoding auth error response", logging.Fields{
			logging.FieldError: err.Error(),
		})
	}
}
