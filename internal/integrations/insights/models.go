package insights

// Request агрегаты дашборда, по которым генерируется подсказка
type Request struct {
	TodayReservations        int     `json:"todayReservations"`
	UpcomingWeekReservations int     `json:"upcomingWeekReservations"`
	AvgPartySize             float64 `json:"avgPartySize"`
	CancellationRatePct      float64 `json:"cancellationRatePct"`
	AvgWaitTime              float64 `json:"avgWaitTime"` // минуты
}

// Insight ответ для дашборда, всегда заполнен
type Insight struct {
	Insight    string `json:"insight"`
	Suggestion string `json:"suggestion"`
}

// Фиксированные ответы на случай деградации
var (
	unavailableInsight = Insight{
		Insight:    "Аналитика временно недоступна.",
		Suggestion: "Подключите ключ API генерации текста в настройках сервиса.",
	}
	tryLaterInsight = Insight{
		Insight:    "Не удалось получить аналитику.",
		Suggestion: "Попробуйте обновить дашборд позже.",
	}
	connectivityInsight = Insight{
		Insight:    "Нет связи с сервисом аналитики.",
		Suggestion: "Проверьте сетевое подключение и повторите попытку.",
	}
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}
