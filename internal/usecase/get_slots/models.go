package get_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	Date      time.Time // Дата (без времени)
	ServiceID int64     // ID услуги
}

// Response модель ответа со списком слотов
type Response struct {
	Date        time.Time     // Дата, на которую запрашивались слоты
	ServiceID   int64         // ID услуги
	ServiceName string        // Название услуги
	Slots       []domain.Slot // Все окна дня по порядку, включая занятые
}

// PoolConfig настройки общего пула для услуг без мастеров
type PoolConfig struct {
	Enabled bool
	Size    int
}
