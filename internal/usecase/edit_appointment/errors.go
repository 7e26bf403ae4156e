package edit_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("edit_appointment: appointment not found")

	// ErrAccessDenied возвращается, когда запись принадлежит другому клиенту
	ErrAccessDenied = errors.New("edit_appointment: access denied")

	// ErrNotEditable возвращается, когда редактирование недоступно:
	// запись не в pending/confirmed или нет одобренного неиспользованного
	// запроса на изменение
	ErrNotEditable = errors.New("edit_appointment: appointment is not editable")

	// ErrServiceNotFound возвращается, когда новая услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("edit_appointment: service not found")

	// ErrServiceInactive возвращается, когда новая услуга отключена
	ErrServiceInactive = errors.New("edit_appointment: service is not active")

	// ErrSlotTaken возвращается, когда новый слот занят другой записью
	ErrSlotTaken = errors.New("edit_appointment: time slot already taken")

	// ErrCapacityExceeded возвращается, когда дневной лимит услуги исчерпан
	ErrCapacityExceeded = errors.New("edit_appointment: daily capacity exceeded for service")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("edit_appointment: invalid appointment date")

	// ErrInvalidTimeSlot возвращается, когда время не входит в сетку слотов
	ErrInvalidTimeSlot = errors.New("edit_appointment: invalid time slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("edit_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("edit_appointment: internal error")
)
