package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeJSON декодирует тело запроса и проверяет теги validate
func DecodeJSON(r *http.Request, v interface{}) error {
	body := io.LimitReader(r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return err
	}
	return Validate(v)
}

// Validate проверяет структуру по тегам validate
func Validate(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			fe := invalid[0]
			return fmt.Errorf("field %s failed on %s", fe.Field(), fe.Tag())
		}
		return err
	}
	return nil
}

// PathInt64 извлекает положительный int64 из параметров пути
func PathInt64(r *http.Request, name string) (int64, error) {
	value, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, mux.Vars(r)[name])
	}
	return value, nil
}

// QueryDate разбирает дату YYYY-MM-DD; допускается полная дата-время, время отбрасывается
func QueryDate(r *http.Request, name string) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return time.Time{}, fmt.Errorf("%s is required", name)
	}
	if i := strings.IndexByte(raw, 'T'); i > 0 {
		raw = raw[:i]
	}
	return domain.ParseISODate(raw)
}

// ParseDateTime разбирает локальное время без зоны (YYYY-MM-DDTHH:MM[:SS]).
// Если клиент прислал время с зоной, зона отбрасывается и остаются часы на стене
func ParseDateTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := domain.ParseLocalDateTime(raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: datetime %q", domain.ErrInvalidTimeFormat, raw)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
}

// QueryOptionalInt64 разбирает необязательный положительный параметр
func QueryOptionalInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return &value, nil
}

// QueryBool разбирает необязательный булев параметр, по умолчанию false
func QueryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}
