package screening

import "time"

// ResumeResponse is the outward-facing representation of a screening resume.
type ResumeResponse struct {
	ScreeningID         string    `json:"screeningId"`
	FileObjectKey       string    `json:"fileObjectKey"`
	Name                *string   `json:"name"`
	School              *string   `json:"school"`
	Major               *string   `json:"major"`
	Degree              *string   `json:"degree"`
	GradYear            *int      `json:"gradYear"`
	Phone               *string   `json:"phone"`
	Email               *string   `json:"email"`
	Skills              []string  `json:"skills"`
	ImageObjectKeys     []string  `json:"imageObjectKeys"`
	IsScreened          bool      `json:"isScreened"`
	MatchedConditionIDs []string  `json:"matchedConditionIds"`
	CreatedAt           time.Time `json:"createdAt"`
}

func toResponse(res Resume) ResumeResponse {
	return ResumeResponse{
		ScreeningID:         res.ID,
		FileObjectKey:       res.FileObjectKey,
		Name:                res.Name,
		School:              res.School,
		Major:               res.Major,
		Degree:              res.Degree,
		GradYear:            res.GradYear,
		Phone:               res.Phone,
		Email:               res.Email,
		Skills:              emptyIfNil(res.Skills),
		ImageObjectKeys:     emptyIfNil(res.ImageObjectKeys),
		IsScreened:          res.IsScreened,
		MatchedConditionIDs: emptyIfNil(res.MatchedConditionIDs),
		CreatedAt:           res.CreatedAt,
	}
}
