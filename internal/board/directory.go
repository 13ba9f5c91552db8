package board

import "github.com/taskerhq/taskdash/internal/model"

// UnknownUserLabel is shown when an ID has no matching loaded user.
const UnknownUserLabel = "—"

// UnknownDashboardLabel is shown when an ID has no matching dashboard.
const UnknownDashboardLabel = "Дашборд"

// Directory is a read-only projection over the loaded user and
// dashboard collections. It only resolves IDs to names; the underlying
// records stay owned by the fetch layer.
type Directory struct {
	users      map[string]model.User
	dashboards map[string]model.Dashboard
}

func NewDirectory(users []model.User, dashboards []model.Dashboard) *Directory {
	d := &Directory{
		users:      make(map[string]model.User, len(users)),
		dashboards: make(map[string]model.Dashboard, len(dashboards)),
	}
	for _, u := range users {
		d.users[u.ID] = u
	}
	for _, db := range dashboards {
		d.dashboards[db.ID] = db
	}
	return d
}

// UserName resolves a user ID to its display name, or the fixed
// placeholder when unknown. An empty ID (unassigned) also resolves to
// the placeholder.
func (d *Directory) UserName(id string) string {
	if u, ok := d.users[id]; ok {
		return u.DisplayName()
	}
	return UnknownUserLabel
}

// User returns the full record for form population.
func (d *Directory) User(id string) (model.User, bool) {
	u, ok := d.users[id]
	return u, ok
}

// DashboardName resolves a dashboard ID to its name, or the fixed
// fallback label when unknown. The "all" aggregate resolves like any
// other entry since it is present in the loaded collection.
func (d *Directory) DashboardName(id string) string {
	if db, ok := d.dashboards[id]; ok {
		return db.Name
	}
	return UnknownDashboardLabel
}
