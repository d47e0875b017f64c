package domain

// EquipmentCategory is a class of rentable equipment with its own rate
// card. Rates and fees are integer cents.
type EquipmentCategory struct {
	ID                        string `json:"id"`
	Name                      string `json:"name"`
	ColorTag                  string `json:"color_tag,omitempty"`
	DailyRateCents            int64  `json:"daily_rate_cents"`
	WeeklyRateCents           int64  `json:"weekly_rate_cents"`
	MonthlyRateCents          int64  `json:"monthly_rate_cents"`
	DeliveryBaseFeeCents      int64  `json:"delivery_base_fee_cents"`
	CrossBranchSurchargeCents int64  `json:"cross_branch_surcharge_cents"`
}

// RateCard carries an administrative pricing update for a category.
type RateCard struct {
	DailyRateCents            int64 `json:"daily_rate_cents"`
	WeeklyRateCents           int64 `json:"weekly_rate_cents"`
	MonthlyRateCents          int64 `json:"monthly_rate_cents"`
	DeliveryBaseFeeCents      int64 `json:"delivery_base_fee_cents"`
	CrossBranchSurchargeCents int64 `json:"cross_branch_surcharge_cents"`
}

// CostQuote is the pricing engine's answer for a category and date range.
// TotalCents is the rental + delivery subtotal; the deposit is reported
// separately and is not part of the total.
type CostQuote struct {
	Days             int   `json:"days"`
	BaseRateCents    int64 `json:"base_rate_cents"`
	DeliveryFeeCents int64 `json:"delivery_fee_cents"`
	DepositCents     int64 `json:"deposit_cents"`
	TotalCents       int64 `json:"total_cents"`
}
