package dashboard

// Stats is the aggregate overview for the landing page, optionally scoped
// to one outlet.
type Stats struct {
	TotalEmployees  int     `json:"totalEmployees"`
	ActiveEmployees int     `json:"activeEmployees"`
	TodayAttendance int     `json:"todayAttendance"`
	MonthlyRevenue  float64 `json:"monthlyRevenue"`
	MonthlyExpenses float64 `json:"monthlyExpenses"`
	NetProfit       float64 `json:"netProfit"`
	PendingBookings int     `json:"pendingBookings"`
	LowStockItems   int     `json:"lowStockItems"`
	PendingTasks    int     `json:"pendingTasks"`
}
