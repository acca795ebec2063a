package rules

import "github.com/m04kA/SMC-RestaurantService/internal/domain"

// EligibleTables возвращает свободные столы, на которых помещается компания.
// Порядок входного списка сохраняется, выбор конкретного стола остается за менеджером.
// Если подходящих столов нет, возвращается пустой (не nil) слайс.
func EligibleTables(tables []domain.Table, party domain.Party) []domain.Table {
	result := make([]domain.Table, 0, len(tables))
	for i := range tables {
		if IsTableEligible(&tables[i], party) {
			result = append(result, tables[i])
		}
	}
	return result
}

// IsTableEligible проверяет один стол
func IsTableEligible(table *domain.Table, party domain.Party) bool {
	return table.IsAvailable() && table.Fits(party.PartySize)
}
