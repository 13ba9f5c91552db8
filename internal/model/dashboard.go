package model

// AllDashboardID is the synthetic aggregate dashboard meaning "every
// dashboard". It is injected at the head of every loaded dashboard
// list and is never a valid Task.DashboardID.
const AllDashboardID = "all"

// AllDashboardName is the display name of the aggregate entry.
const AllDashboardName = "Все дашборды"

type Dashboard struct {
	ID   string
	Name string
}

// AllDashboard returns the synthetic aggregate entry.
func AllDashboard() Dashboard {
	return Dashboard{ID: AllDashboardID, Name: AllDashboardName}
}
