package changerequests

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrRequestNotFound возвращается, когда запрос на изменение не найден
	ErrRequestNotFound = errors.New("change request not found")

	// ErrNotEditable возвращается, когда запись нельзя изменить:
	// она уже в работе, завершена или отменена
	ErrNotEditable = errors.New("appointment is not editable")

	// ErrRequestAlreadyPending возвращается, когда по записи уже есть
	// неразрешённый запрос на изменение
	ErrRequestAlreadyPending = errors.New("change request already pending for appointment")

	// ErrAlreadyResolved возвращается при повторном разрешении запроса
	// (в том числе проигравшим в конкурентной гонке администратором)
	ErrAlreadyResolved = errors.New("change request already resolved")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
