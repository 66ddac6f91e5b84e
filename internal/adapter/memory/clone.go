package memory

import "github.com/farhancoder7071/journynow/internal/domain"

// Stored rows are values, but some fields are pointers. Everything that
// crosses the package boundary is copied so callers cannot alias the store.

func cloneUser(u domain.User) *domain.User {
	if u.FullName != nil {
		name := *u.FullName
		u.FullName = &name
	}
	return &u
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func cloneReport(r domain.CrowdReport) domain.CrowdReport {
	r.RouteID = cloneID(r.RouteID)
	return r
}

func cloneReports(rows []domain.CrowdReport) []domain.CrowdReport {
	for i := range rows {
		rows[i] = cloneReport(rows[i])
	}
	return rows
}

func cloneSetting(s domain.AppSetting) domain.AppSetting {
	s.UpdatedBy = cloneID(s.UpdatedBy)
	return s
}

func cloneSettings(rows []domain.AppSetting) []domain.AppSetting {
	for i := range rows {
		rows[i] = cloneSetting(rows[i])
	}
	return rows
}
