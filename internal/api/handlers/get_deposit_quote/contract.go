package get_deposit_quote

import (
	"context"

	getDepositQuote "github.com/m04kA/SMC-RestaurantService/internal/usecase/get_deposit_quote"
)

type GetDepositQuoteUseCase interface {
	Execute(ctx context.Context, req *getDepositQuote.Request) (*getDepositQuote.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
