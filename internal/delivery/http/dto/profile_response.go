package dto

import (
	"staff-directory/internal/domain/profile"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	ID                 uuid.UUID  `json:"id"`
	FirstName          string     `json:"first_name"`
	LastName           string     `json:"last_name"`
	DisplayName        string     `json:"display_name"`
	Email              string     `json:"email"`
	Title              string     `json:"title,omitempty"`
	AvatarURL          string     `json:"avatar_url,omitempty"`
	Department         string     `json:"department,omitempty"`
	ReportsTo          *uuid.UUID `json:"reports_to,omitempty"`
	OfficeLocation     string     `json:"office_location,omitempty"`
	Skills             []string   `json:"skills"`
	AvailabilityStatus string     `json:"availability_status,omitempty"`
	Visible            bool       `json:"visible"`
}

func NewProfileResponse(rec profile.Record) ProfileResponse {
	return ProfileResponse{
		ID:                 rec.ID,
		FirstName:          rec.FirstName,
		LastName:           rec.LastName,
		DisplayName:        rec.DisplayName(),
		Email:              rec.Email,
		Title:              rec.Title,
		AvatarURL:          rec.AvatarURL,
		Department:         rec.Department,
		ReportsTo:          rec.ReportsTo,
		OfficeLocation:     rec.OfficeLocation,
		Skills:             rec.Skills,
		AvailabilityStatus: rec.AvailabilityStatus,
		Visible:            rec.Visible,
	}
}

func NewProfileResponses(recs []profile.Record) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, NewProfileResponse(rec))
	}
	return out
}

type DirectoryListResponse struct {
	Total   int               `json:"total"`
	Results []ProfileResponse `json:"results"`
}

type OrgChartResponse struct {
	User           ProfileResponse   `json:"user"`
	ReportingChain []ProfileResponse `json:"reporting_chain"`
	DirectReports  []ProfileResponse `json:"direct_reports"`
}
