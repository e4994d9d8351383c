package conditions

import "time"

// ConditionResponse is the outward-facing representation of a condition.
type ConditionResponse struct {
	ConditionID string    `json:"conditionId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Criteria    Criteria  `json:"criteria"`
	Status      string    `json:"status"`
	IsDeleted   bool      `json:"isDeleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toResponse(cond Condition) ConditionResponse {
	return ConditionResponse{
		ConditionID: cond.ID,
		Name:        cond.Name,
		Description: cond.Description,
		Criteria:    cond.Criteria,
		Status:      cond.Status,
		IsDeleted:   cond.Status == StatusDeleted,
		CreatedAt:   cond.CreatedAt,
		UpdatedAt:   cond.UpdatedAt,
	}
}
