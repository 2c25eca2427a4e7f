package pricing

import "github.com/Domenick1991/resortbooking/internal/domain"

// Calculate itemizes a stay. It reports false while the booking has no
// accommodation or no nights; callers show no total in that case.
//
// Add-on ids missing from catalog cost nothing. Nothing is rounded here.
func Calculate(accommodation *domain.Villa, nights int, selected []domain.SelectedAddOn, catalog []domain.AddOn, cfg domain.ResortConfig) (domain.PricingBreakdown, bool) {
	if accommodation == nil || nights <= 0 {
		return domain.PricingBreakdown{}, false
	}

	accommodationTotal := accommodation.PricePerNight * float64(nights)

	var addOnsTotal float64
	for _, s := range selected {
		if addon, ok := domain.FindAddOn(catalog, s.ID); ok {
			addOnsTotal += addon.Price * float64(s.Quantity)
		}
	}

	subtotal := accommodationTotal + addOnsTotal
	taxes := subtotal * cfg.TaxRate

	return domain.PricingBreakdown{
		NightlyRate:        accommodation.PricePerNight,
		NumberOfNights:     nights,
		AccommodationTotal: accommodationTotal,
		AddOnsTotal:        addOnsTotal,
		Subtotal:           subtotal,
		TaxRate:            cfg.TaxRate,
		Taxes:              taxes,
		ResortFee:          cfg.ResortFee,
		Total:              subtotal + taxes + cfg.ResortFee,
	}, true
}

// ForState prices the booking held in state.
func ForState(state domain.BookingState, catalog []domain.AddOn, cfg domain.ResortConfig) (domain.PricingBreakdown, bool) {
	return Calculate(state.Accommodation, state.Dates.Nights(), state.SelectedAddOns, catalog, cfg)
}
