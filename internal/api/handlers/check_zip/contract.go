package check_zip

import (
	"context"

	checkZip "github.com/m04kA/SMC-DeliverySlotService/internal/usecase/check_zip"
)

type CheckZipUseCase interface {
	Execute(ctx context.Context, req *checkZip.Request) (*checkZip.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
