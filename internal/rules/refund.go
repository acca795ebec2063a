package rules

import (
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// IsRefundEligible решает, возвращается ли депозит при отмене.
// Для conditional граница включительная: отмена ровно за RefundHoursBefore часов - возврат есть.
func IsRefundEligible(policy domain.PricingPolicy, reservationTime, cancellationTime time.Time) bool {
	switch policy.RefundPolicy {
	case domain.RefundPolicyRefundable:
		return true
	case domain.RefundPolicyNonRefundable:
		return false
	case domain.RefundPolicyConditional:
		notice := reservationTime.Sub(cancellationTime)
		return notice >= time.Duration(policy.RefundHoursBefore)*time.Hour
	default:
		return false
	}
}
