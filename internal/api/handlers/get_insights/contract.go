package get_insights

import (
	"context"

	getDashboardInsights "github.com/m04kA/SMC-RestaurantService/internal/usecase/get_dashboard_insights"
)

type GetDashboardInsightsUseCase interface {
	Execute(ctx context.Context, req *getDashboardInsights.Request) (*getDashboardInsights.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
