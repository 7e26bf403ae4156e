package changerequest

import "errors"

var (
	// ErrRequestNotFound возвращается, когда запрос на изменение не найден
	ErrRequestNotFound = errors.New("changerequest.repository: change request not found")

	// ErrActiveRequestExists возвращается при попытке создать второй
	// неразрешённый запрос по той же записи
	ErrActiveRequestExists = errors.New("changerequest.repository: active request already exists for appointment")

	// ErrNotPending возвращается, когда условное разрешение не прошло:
	// запрос уже разрешён (в том числе конкурентным администратором)
	ErrNotPending = errors.New("changerequest.repository: request is not pending")

	// ErrNotConsumable возвращается, когда одобрение уже использовано
	// или запрос не одобрен
	ErrNotConsumable = errors.New("changerequest.repository: request is not consumable")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("changerequest.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("changerequest.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("changerequest.repository: failed to scan row")
)
