package export

import "errors"

var (
	// ErrInvalidTimeRange возвращается, когда начало периода не раньше конца
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrRangeTooLong возвращается при слишком длинном периоде выгрузки
	ErrRangeTooLong = errors.New("export range is too long")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
