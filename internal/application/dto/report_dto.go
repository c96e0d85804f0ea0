package dto

// ReportSummaryResponse resumen de movimientos en un rango de fechas.
type ReportSummaryResponse struct {
	FromDate        Date  `json:"fromDate"`
	ToDate          Date  `json:"toDate"`
	TotalAmountPaid Money `json:"totalAmountPaid"`
	TotalAmountDue  Money `json:"totalAmountDue"`
	GrandTotal      Money `json:"grandTotal"`
	TotalWorkHours  Money `json:"totalWorkHours"`
	TotalEntries    int64 `json:"totalEntries"`
}
