package model

// Profile is one of the agency's staffing categories.
type Profile string

const (
	ProfileUX        Profile = "UX"
	ProfileUI        Profile = "UI"
	ProfileDesign    Profile = "DESIGN"
	ProfileDev       Profile = "DEV"
	ProfilePM        Profile = "PM"
	ProfileContent   Profile = "CONTENT"
	ProfileAnalytics Profile = "ANALYTICS"
)

// Profiles lists every trackable profile in display order.
var Profiles = []Profile{
	ProfileUX,
	ProfileUI,
	ProfileDesign,
	ProfileDev,
	ProfilePM,
	ProfileContent,
	ProfileAnalytics,
}

// ValidProfile reports whether p belongs to the closed profile set.
func ValidProfile(p Profile) bool {
	for _, known := range Profiles {
		if p == known {
			return true
		}
	}
	return false
}

// ProfileHours tracks estimated vs actual hours for one (project, profile)
// pair. At most one row per pair; a missing profile means zero on both sides.
type ProfileHours struct {
	ID             int     `json:"id"`
	ProjectID      int     `json:"project_id"`
	Profile        Profile `json:"profile"`
	EstimatedHours float64 `json:"estimated_hours"`
	ActualHours    float64 `json:"actual_hours"`
}

// ChangeRequestHours tracks actual hours logged against a single change
// request. Estimates are not kept at this granularity; CR work is unplanned.
type ChangeRequestHours struct {
	ID              int     `json:"id"`
	ChangeRequestID int     `json:"change_request_id"`
	Profile         Profile `json:"profile"`
	ActualHours     float64 `json:"actual_hours"`
}
