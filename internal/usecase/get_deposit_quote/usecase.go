package get_deposit_quote

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/internal/rules"
)

// UseCase use case расчета депозита для гостя
type UseCase struct {
	settings SettingsProvider
	metrics  Metrics
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(settings SettingsProvider, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		settings: settings,
		metrics:  metrics,
		logger:   logger,
	}
}

// Execute считает депозит. Ничего не сохраняет, можно вызывать сколько угодно раз.
// Пик и выходные определяются по местному времени ресторана.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDepositQuote: validation failed: %v", err)
		return nil, err
	}

	settings, err := uc.settings.Get(ctx, req.RestaurantID)
	if err != nil {
		uc.logger.Error("GetDepositQuote: failed to get settings for restaurant=%d: %v", req.RestaurantID, err)
		return nil, fmt.Errorf("%w: %v", ErrCollaboratorUnavailable, err)
	}

	policy := settings.Reservation.PricingPolicy()
	local := req.RequestedTime.In(settings.Manager.Location())

	resp := &Response{
		RestaurantID: req.RestaurantID,
		PartySize:    req.PartySize,
		LocalTime:    local.Format(domain.DateFormat + " " + domain.TimeFormat),
		Required:     policy.RequirePayment,
		RefundPolicy: string(policy.RefundPolicy),
	}
	if policy.RefundPolicy == domain.RefundPolicyConditional {
		resp.RefundHoursBefore = policy.RefundHoursBefore
	}

	uc.metrics.IncDepositQuote(policy.RequirePayment)

	if !policy.RequirePayment {
		return resp, nil
	}

	deposit := rules.ComputeDeposit(policy, domain.Party{PartySize: req.PartySize, RequestedTime: local})
	resp.Amount = deposit.Amount
	resp.Breakdown = &deposit.Breakdown

	uc.logger.Info("GetDepositQuote: restaurant=%d party=%d at %s -> %.2f",
		req.RestaurantID, req.PartySize, resp.LocalTime, deposit.Amount)

	return resp, nil
}
