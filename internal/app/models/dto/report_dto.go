package dto

// ReportQuery holds the query string of the ranking reports.
// FromDate and ToDate accept RFC3339 or YYYY-MM-DD; ToDate is exclusive.
type ReportQuery struct {
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100" example:"10"`
	FromDate string `form:"fromDate" binding:"required" example:"2024-01-01"`
	ToDate   string `form:"toDate" example:"2024-07-01"`
}
