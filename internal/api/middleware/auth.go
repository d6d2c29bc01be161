package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Mkaniukov/carwash-crm/internal/api/handlers"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

// Role роль сотрудника мойки
type Role string

const (
	RoleWorker Role = "worker"
	RoleOwner  Role = "owner"
)

// Staff аутентифицированный сотрудник
type Staff struct {
	ID   int64
	Role Role
}

// IsOwner сотрудник является владельцем
func (s Staff) IsOwner() bool {
	return s.Role == RoleOwner
}

type ctxKey struct{}

// StaffFromContext возвращает сотрудника, установленного Auth
func StaffFromContext(ctx context.Context) (Staff, bool) {
	staff, ok := ctx.Value(ctxKey{}).(Staff)
	return staff, ok
}

// WithStaff кладёт сотрудника в контекст
func WithStaff(ctx context.Context, staff Staff) context.Context {
	return context.WithValue(ctx, ctxKey{}, staff)
}

// Auth проверяет заголовки X-User-ID и X-User-Role
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "требуется заголовок X-User-ID")
			return
		}

		role := Role(r.Header.Get(HeaderUserRole))
		if role != RoleWorker && role != RoleOwner {
			handlers.RespondForbidden(w, "неизвестная роль пользователя")
			return
		}

		ctx := WithStaff(r.Context(), Staff{ID: userID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OwnerOnly пропускает только владельца. Используется после Auth
func OwnerOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		staff, ok := StaffFromContext(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, "требуется аутентификация")
			return
		}
		if !staff.IsOwner() {
			handlers.RespondForbidden(w, "доступно только владельцу")
			return
		}
		next.ServeHTTP(w, r)
	})
}
