package create_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrServiceInactive возвращается, когда услуга отключена в каталоге
	ErrServiceInactive = errors.New("create_appointment: service is not active")

	// ErrSlotTaken возвращается, когда временной слот уже занят
	// другой записью (любой услуги)
	ErrSlotTaken = errors.New("create_appointment: time slot already taken")

	// ErrCapacityExceeded возвращается, когда дневной лимит услуги исчерпан
	ErrCapacityExceeded = errors.New("create_appointment: daily capacity exceeded for service")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrInvalidTimeSlot возвращается, когда время не входит в сетку слотов
	ErrInvalidTimeSlot = errors.New("create_appointment: invalid time slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
