package settings

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/internal/rules"
	"github.com/m04kA/SMC-RestaurantService/internal/service/settings/models"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// BuildResult собранные настройки и проверенные изменения слотов
type BuildResult struct {
	Settings    *domain.Settings
	SlotCreates []domain.TimeSlot
	SlotUpdates []domain.TimeSlot
	SlotDeletes []int64
}

// ValidateAndBuild собирает сохраняемые настройки из сырых данных формы.
//
// Пустые и нечисловые значения заменяются значениями по умолчанию (lead time 2 ч,
// cutoff 21:00, часы до возврата 24, брони на слот 4, пик 19:00-21:00, суммы 0),
// так что пустое поле никогда не сохраняется.
// Ошибкой (*rules.ValidationError) считается то, что нельзя исправить подстановкой:
// отрицательные суммы, пик с началом не раньше конца, битый тариф,
// неизвестные политика возврата, тип штрафа или часовой пояс.
//
// Изменения слотов проверяются по очереди против existing и уже принятых
// изменений этого же сохранения; дубликат возвращает *rules.DuplicateSlotError.
func ValidateAndBuild(
	restaurantID int64,
	guest models.RawGuestSettings,
	payment models.RawPaymentSettings,
	manager models.RawManagerSettings,
	slots []models.SlotEdit,
	existing []domain.TimeSlot,
) (*BuildResult, error) {
	reservation, err := buildReservation(guest)
	if err != nil {
		return nil, err
	}

	reservation.Payment, err = buildPayment(payment)
	if err != nil {
		return nil, err
	}

	managerSettings, err := buildManager(manager)
	if err != nil {
		return nil, err
	}

	result := &BuildResult{
		Settings: &domain.Settings{
			RestaurantID: restaurantID,
			Reservation:  reservation,
			Manager:      managerSettings,
		},
		SlotCreates: make([]domain.TimeSlot, 0),
		SlotUpdates: make([]domain.TimeSlot, 0),
		SlotDeletes: make([]int64, 0),
	}

	if err := applySlotEdits(result, restaurantID, slots, existing); err != nil {
		return nil, err
	}

	return result, nil
}

func buildReservation(raw models.RawGuestSettings) (domain.ReservationSettings, error) {
	occasions, err := cleanOccasions(raw.SpecialOccasions)
	if err != nil {
		return domain.ReservationSettings{}, err
	}

	return domain.ReservationSettings{
		LeadTimeHours:          intInRange(raw.LeadTimeHours, 0, domain.MaxLeadTimeHours, domain.DefaultLeadTimeHours),
		CutoffTime:             timeOr(raw.CutoffTime, domain.DefaultCutoffTime),
		AutoConfirm:            raw.AutoConfirm.Or(false),
		AllowSpecialNotes:      raw.AllowSpecialNotes.Or(true),
		SpecialOccasions:       occasions,
		MaxReservationsPerSlot: intInRange(raw.MaxReservationsPerSlot, 1, domain.MaxReservationsPerSlot, domain.DefaultMaxReservationsPerSlot),
		RequirePayment:         raw.RequirePayment.Or(false),
	}, nil
}

func buildPayment(raw models.RawPaymentSettings) (domain.PaymentSettings, error) {
	var (
		p   domain.PaymentSettings
		err error
	)

	if p.BaseAmount, err = money("base_payment_amount", raw.BaseAmount); err != nil {
		return p, err
	}
	if p.PeakHoursPremium, err = money("peak_hours_premium", raw.PeakHoursPremium); err != nil {
		return p, err
	}
	if p.WeekendPremium, err = money("weekend_premium", raw.WeekendPremium); err != nil {
		return p, err
	}

	if p.PartySizePricing, err = buildTiers(raw.PartySizePricing); err != nil {
		return p, err
	}

	p.PeakHoursStart = timeOr(raw.PeakHoursStart, domain.DefaultPeakHoursStart)
	p.PeakHoursEnd = timeOr(raw.PeakHoursEnd, domain.DefaultPeakHoursEnd)
	if !p.PeakHoursStart.IsBefore(p.PeakHoursEnd) {
		return p, rules.NewValidationError("peak_hours_end", "must be after peak_hours_start")
	}

	switch policy := domain.RefundPolicy(strings.TrimSpace(raw.RefundPolicy)); policy {
	case "":
		p.RefundPolicy = domain.DefaultRefundPolicy
	case domain.RefundPolicyRefundable, domain.RefundPolicyNonRefundable, domain.RefundPolicyConditional:
		p.RefundPolicy = policy
	default:
		return p, rules.NewValidationError("refund_policy", fmt.Sprintf("unknown policy %q", raw.RefundPolicy))
	}
	p.RefundHoursBefore = intInRange(raw.RefundHoursBefore, 1, domain.MaxRefundHoursBefore, domain.DefaultRefundHoursBefore)

	p.ChargeNoShow = raw.ChargeNoShow.Or(false)
	switch chargeType := domain.NoShowChargeType(strings.TrimSpace(raw.NoShowChargeType)); chargeType {
	case "":
		p.NoShowChargeType = domain.DefaultNoShowChargeType
	case domain.NoShowChargeFixed, domain.NoShowChargePercentage:
		p.NoShowChargeType = chargeType
	default:
		return p, rules.NewValidationError("no_show_charge_type", fmt.Sprintf("unknown type %q", raw.NoShowChargeType))
	}
	if p.NoShowChargeValue, err = money("no_show_charge_value", raw.NoShowChargeValue); err != nil {
		return p, err
	}
	if p.NoShowChargeType == domain.NoShowChargePercentage && p.NoShowChargeValue > domain.MaxNoShowPercentage {
		return p, rules.NewValidationError("no_show_charge_value", "percentage must not exceed 100")
	}

	return p, nil
}

func buildTiers(raw []models.RawPartySizeTier) ([]domain.PartySizeTier, error) {
	tiers := make([]domain.PartySizeTier, 0, len(raw))

	for i, t := range raw {
		field := fmt.Sprintf("party_size_pricing[%d]", i)

		minParty, ok := t.MinParty.Int()
		if !ok || minParty < domain.MinPartySize {
			return nil, rules.NewValidationError(field+".minParty", "must be at least 1")
		}
		maxParty, ok := t.MaxParty.Int()
		if !ok || maxParty < minParty {
			return nil, rules.NewValidationError(field+".maxParty", "must not be less than minParty")
		}
		amount, err := money(field+".amount", t.Amount)
		if err != nil {
			return nil, err
		}

		tiers = append(tiers, domain.PartySizeTier{MinParty: minParty, MaxParty: maxParty, Amount: amount})
	}

	return tiers, nil
}

func buildManager(raw models.RawManagerSettings) (domain.ManagerSettings, error) {
	tz := strings.TrimSpace(raw.Timezone)
	if tz == "" {
		tz = domain.DefaultTimezone
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return domain.ManagerSettings{}, rules.NewValidationError("timezone", fmt.Sprintf("unknown timezone %q", raw.Timezone))
	}

	return domain.ManagerSettings{
		Timezone:             tz,
		ShowAvgPartySize:     raw.ShowAvgPartySize.Or(true),
		ShowPeakHour:         raw.ShowPeakHour.Or(true),
		ShowCancellationRate: raw.ShowCancellationRate.Or(true),
		ShowThisWeek:         raw.ShowThisWeek.Or(true),
	}, nil
}

func applySlotEdits(result *BuildResult, restaurantID int64, edits []models.SlotEdit, existing []domain.TimeSlot) error {
	// Рабочий набор: существующие слоты с уже принятыми изменениями
	working := make([]domain.TimeSlot, len(existing))
	copy(working, existing)

	known := make(map[int64]bool, len(existing))
	for _, s := range existing {
		known[s.ID] = true
	}

	for i, edit := range edits {
		field := fmt.Sprintf("time_slots[%d]", i)

		if edit.Delete {
			if edit.ID == nil || !known[*edit.ID] {
				return rules.NewValidationError(field+".id", "unknown slot to delete")
			}
			result.SlotDeletes = append(result.SlotDeletes, *edit.ID)
			working = removeSlot(working, *edit.ID)
			continue
		}

		slot, err := slotFromEdit(restaurantID, edit)
		if err != nil {
			return err
		}
		if edit.ID != nil && !known[*edit.ID] {
			return rules.NewValidationError(field+".id", "unknown slot to update")
		}

		if err := rules.CheckTimeSlotShape(slot); err != nil {
			return err
		}
		if err := rules.ValidateTimeSlot(slot, working, edit.ID); err != nil {
			return err
		}

		if edit.ID == nil {
			result.SlotCreates = append(result.SlotCreates, slot)
			working = append(working, slot)
		} else {
			result.SlotUpdates = append(result.SlotUpdates, slot)
			working = append(removeSlot(working, slot.ID), slot)
		}
	}

	return nil
}

// slotFromEdit разбирает изменение слота в доменную модель (без бизнес-проверок)
func slotFromEdit(restaurantID int64, edit models.SlotEdit) (domain.TimeSlot, error) {
	start, err := types.NewTimeStringFromString(edit.StartTime)
	if err != nil {
		return domain.TimeSlot{}, rules.NewValidationError("startTime", "expected HH:MM")
	}
	end, err := types.NewTimeStringFromString(edit.EndTime)
	if err != nil {
		return domain.TimeSlot{}, rules.NewValidationError("endTime", "expected HH:MM")
	}

	slot := domain.TimeSlot{
		RestaurantID: restaurantID,
		Weekday:      time.Weekday(edit.Weekday),
		StartTime:    start,
		EndTime:      end,
		MaxCovers:    edit.MaxCovers,
		IsDefault:    edit.IsDefault,
		IsActive:     edit.IsActive == nil || *edit.IsActive,
	}
	if edit.ID != nil {
		slot.ID = *edit.ID
	}

	if edit.SpecificDate != nil && strings.TrimSpace(*edit.SpecificDate) != "" {
		date, err := time.Parse(domain.DateFormat, strings.TrimSpace(*edit.SpecificDate))
		if err != nil {
			return domain.TimeSlot{}, rules.NewValidationError("specificDate", "expected YYYY-MM-DD")
		}
		// Слот на дату всегда привязан к её дню недели
		if date.Weekday() != slot.Weekday {
			return domain.TimeSlot{}, rules.NewValidationError("specificDate", "does not fall on weekday")
		}
		slot.SpecificDate = &date
	}

	return slot, nil
}

func removeSlot(slots []domain.TimeSlot, id int64) []domain.TimeSlot {
	result := slots[:0:0]
	for _, s := range slots {
		if s.ID != id {
			result = append(result, s)
		}
	}
	return result
}

// intInRange разбирает целое. Пустое, дробное или вне [lo, hi] - def
func intInRange(n types.LooseNumber, lo, hi, def int) int {
	v, ok := n.Int()
	if !ok || v < lo || v > hi {
		return def
	}
	return v
}

// money пустое, нечисловое, NaN или бесконечность - 0, отрицательное - ошибка
func money(field string, n types.LooseNumber) (float64, error) {
	v, ok := n.Float()
	if !ok {
		return 0, nil
	}
	if v < 0 {
		return 0, rules.NewValidationError(field, "must not be negative")
	}
	return v, nil
}

func timeOr(raw string, def types.TimeString) types.TimeString {
	if strings.TrimSpace(raw) == "" {
		return def
	}
	t, err := types.NewTimeStringFromString(raw)
	if err != nil {
		return def
	}
	return t
}

func cleanOccasions(raw []string) ([]string, error) {
	occasions := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))

	for _, o := range raw {
		o = strings.TrimSpace(o)
		if o == "" || seen[strings.ToLower(o)] {
			continue
		}
		seen[strings.ToLower(o)] = true
		occasions = append(occasions, o)
	}

	if len(occasions) > domain.MaxSpecialOccasions {
		return nil, rules.NewValidationError("special_occasions", fmt.Sprintf("at most %d allowed", domain.MaxSpecialOccasions))
	}

	return occasions, nil
}
