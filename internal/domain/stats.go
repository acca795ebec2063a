package domain

import "math"

// ReservationStats агрегаты по бронированиям ресторана за период
type ReservationStats struct {
	Total        int
	Cancelled    int
	AvgPartySize float64
}

// CancellationRatePct доля отмен в процентах, округленная до десятых
func (s ReservationStats) CancellationRatePct() float64 {
	if s.Total == 0 {
		return 0
	}
	return math.Round(float64(s.Cancelled)/float64(s.Total)*1000) / 10
}
