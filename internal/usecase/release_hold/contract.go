package release_hold

import "context"

// HoldRepository интерфейс репозитория удержаний
type HoldRepository interface {
	DeleteByToken(ctx context.Context, token string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
