package settings

import "errors"

var (
	// ErrCacheMiss возвращается, когда в кэше нет настроек ресторана
	ErrCacheMiss = errors.New("settings.cache: miss")

	// ErrCache возвращается при ошибках Redis или сериализации
	ErrCache = errors.New("settings.cache: redis error")
)
