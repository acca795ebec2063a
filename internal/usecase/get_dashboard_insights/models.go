package get_dashboard_insights

import "time"

// Окна агрегации
const (
	statsWindowDays = 30 // отмены и средний размер компании
	waitWindowDays  = 7  // среднее ожидание в очереди
	upcomingDays    = 7
)

// Request модель запроса дашборда
type Request struct {
	UserID       int64
	RestaurantID int64
}

// Metrics цифры дашборда. Поля, скрытые в настройках менеджера, не заполняются.
type Metrics struct {
	TodayReservations        int      `json:"todayReservations"`
	UpcomingWeekReservations *int     `json:"upcomingWeekReservations,omitempty"`
	AvgPartySize             *float64 `json:"avgPartySize,omitempty"`
	CancellationRatePct      *float64 `json:"cancellationRatePct,omitempty"`
	PeakHour                 *string  `json:"peakHour,omitempty"`
	AvgWaitMinutes           float64  `json:"avgWaitMinutes"`
}

// Response модель ответа дашборда
type Response struct {
	RestaurantID int64     `json:"restaurantId"`
	Timezone     string    `json:"timezone"`
	GeneratedAt  time.Time `json:"generatedAt"`
	Metrics      Metrics   `json:"metrics"`
	Insight      string    `json:"insight"`
	Suggestion   string    `json:"suggestion"`
}
