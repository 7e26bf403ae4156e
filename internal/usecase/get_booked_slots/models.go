package get_booked_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса расписания занятости на дату
type Request struct {
	Date time.Time // Дата, на которую запрашивается расписание
}

// Response модель ответа с занятыми и свободными слотами приёмки
type Response struct {
	Date        time.Time
	BookedSlots []types.TimeString // Занятые слоты (все услуги)
	FreeSlots   []types.TimeString // Свободные слоты рабочей сетки
}
