package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// RequireUser требует заголовок X-User-ID с числовым ID пользователя
// Идентификацию выполняет вышестоящий gateway, здесь только доверенный заголовок
func RequireUser(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("X-User-ID")
			if raw == "" {
				logger.Warn("%s %s - missing X-User-ID header", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, "требуется заголовок X-User-ID")
				return
			}

			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || userID <= 0 {
				logger.Warn("%s %s - invalid X-User-ID header: %q", r.Method, r.URL.Path, raw)
				handlers.RespondUnauthorized(w, "некорректный заголовок X-User-ID")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext извлекает ID пользователя, положенный RequireUser
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
