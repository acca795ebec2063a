package insights

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics учет деградаций
type Metrics interface {
	IncInsightFallback(reason string)
}
