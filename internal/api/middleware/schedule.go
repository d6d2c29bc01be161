package middleware

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// DefaultSchedule подставляет scheduleId для маршрутов без него в пути.
// Старые клиенты с одним расписанием ходят на /settings и /bookings/by-date
func DefaultSchedule(scheduleID int64) mux.MiddlewareFunc {
	id := strconv.FormatInt(scheduleID, 10)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			vars := mux.Vars(r)
			if _, ok := vars["scheduleId"]; ok {
				next.ServeHTTP(w, r)
				return
			}

			merged := make(map[string]string, len(vars)+1)
			for k, v := range vars {
				merged[k] = v
			}
			merged["scheduleId"] = id
			next.ServeHTTP(w, mux.SetURLVars(r, merged))
		})
	}
}
