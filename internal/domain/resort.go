package domain

// ResortConfig is read-only once the process has started.
type ResortConfig struct {
	TaxRate            float64 `json:"taxRate" yaml:"tax_rate"`
	ResortFee          float64 `json:"resortFee" yaml:"resort_fee"`
	MinNights          int     `json:"minNights" yaml:"min_nights"`
	MaxNights          int     `json:"maxNights" yaml:"max_nights"`
	AdvanceBookingDays int     `json:"advanceBookingDays" yaml:"advance_booking_days"`
	CheckInTime        string  `json:"checkInTime" yaml:"check_in_time"`
	CheckOutTime       string  `json:"checkOutTime" yaml:"check_out_time"`
}

func DefaultResortConfig() ResortConfig {
	return ResortConfig{
		TaxRate:            0.12,
		ResortFee:          75,
		MinNights:          2,
		MaxNights:          14,
		AdvanceBookingDays: 365,
		CheckInTime:        "3:00 PM",
		CheckOutTime:       "11:00 AM",
	}
}
