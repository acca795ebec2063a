package rules

import (
	"math"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// DepositBreakdown детализация расчета депозита.
// Base + TierAdjustment = примененная базовая часть (тариф заменяет базу, а не прибавляется).
type DepositBreakdown struct {
	Base              float64 `json:"base"`
	TierAdjustment    float64 `json:"tierAdjustment"`
	PeakAdjustment    float64 `json:"peakAdjustment"`
	WeekendAdjustment float64 `json:"weekendAdjustment"`
}

// ComputedDeposit результат расчета депозита, не сохраняется
type ComputedDeposit struct {
	Amount    float64          `json:"amount"`
	Breakdown DepositBreakdown `json:"breakdown"`
}

// ComputeDeposit считает депозит для компании гостей.
//
// Порядок:
//  1. база = BaseAmount
//  2. первый по списку тариф, в диапазон которого попадает размер компании, заменяет базу
//  3. + PeakPremium, если время в [PeakStart, PeakEnd)
//  4. + WeekendPremium, если суббота или воскресенье
//  5. итог не меньше 0
//
// party.RequestedTime должен быть уже в часовом поясе ресторана.
// Вызывать только при policy.RequirePayment == true.
func ComputeDeposit(policy domain.PricingPolicy, party domain.Party) ComputedDeposit {
	base := policy.BaseAmount
	applied := base

	if tier, ok := MatchTier(policy.PartySizeTiers, party.PartySize); ok {
		applied = tier.Amount
	}

	var peak float64
	if isPeak(policy, party) {
		peak = policy.PeakPremium
	}

	var weekend float64
	if party.IsWeekend() {
		weekend = policy.WeekendPremium
	}

	amount := applied + peak + weekend
	if amount < 0 {
		amount = 0
	}

	return ComputedDeposit{
		Amount: roundCents(amount),
		Breakdown: DepositBreakdown{
			Base:              base,
			TierAdjustment:    applied - base,
			PeakAdjustment:    peak,
			WeekendAdjustment: weekend,
		},
	}
}

// MatchTier возвращает первый тариф, диапазон которого содержит partySize
func MatchTier(tiers []domain.PartySizeTier, partySize int) (domain.PartySizeTier, bool) {
	for _, tier := range tiers {
		if tier.Contains(partySize) {
			return tier, true
		}
	}
	return domain.PartySizeTier{}, false
}

func isPeak(policy domain.PricingPolicy, party domain.Party) bool {
	if policy.PeakStart.IsZero() || policy.PeakEnd.IsZero() {
		return false
	}
	return types.NewTimeString(party.RequestedTime).Within(policy.PeakStart, policy.PeakEnd)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
