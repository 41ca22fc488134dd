package dto

// CategorySummary reports a category's consumption for one month, converted
// to the primary currency at the configured rate, against its allowance.
type CategorySummary struct {
	CategoryID string  `json:"categoryId"`
	Name       string  `json:"name"`
	Consumed   string  `json:"consumed"`
	Allowed    *string `json:"allowed"`
}

// MonthSummaryResponse is the per-category spending breakdown for a month.
type MonthSummaryResponse struct {
	Month      string            `json:"month"`
	Total      string            `json:"total"`
	Categories []CategorySummary `json:"categories"`
}

// AvailableMonthsResponse lists the distinct YYYY-MM keys that have at least
// one expense, newest first.
type AvailableMonthsResponse struct {
	Months []string `json:"months"`
}
