package dto

// AnalyticsRangeRequest bounds an analytics query to a date range.
// Dates are inclusive, formatted YYYY-MM-DD; both are optional.
type AnalyticsRangeRequest struct {
	From *string `form:"from" binding:"omitempty,dateonly"`
	To   *string `form:"to" binding:"omitempty,dateonly"`
}

// CorrelationRequest names the two metric keys to correlate.
type CorrelationRequest struct {
	MetricA string  `form:"metricA" binding:"required"`
	MetricB string  `form:"metricB" binding:"required"`
	From    *string `form:"from" binding:"omitempty,dateonly"`
	To      *string `form:"to" binding:"omitempty,dateonly"`
}
