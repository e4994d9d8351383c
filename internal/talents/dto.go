package talents

import "time"

// TalentResponse is the outward-facing representation of a talent.
type TalentResponse struct {
	TalentID          string    `json:"talentId"`
	Name              *string   `json:"name"`
	Gender            *string   `json:"gender"`
	School            *string   `json:"school"`
	Major             *string   `json:"major"`
	Degree            *string   `json:"degree"`
	GradYear          *int      `json:"gradYear"`
	Phone             *string   `json:"phone"`
	Email             *string   `json:"email"`
	ResumeObjectKey   string    `json:"resumeObjectKey"`
	SourceScreeningID string    `json:"sourceScreeningId"`
	Skills            []string  `json:"skills,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

func toResponse(talent Talent, skills []Skill) TalentResponse {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	return TalentResponse{
		TalentID:          talent.ID,
		Name:              talent.Name,
		Gender:            talent.Gender,
		School:            talent.School,
		Major:             talent.Major,
		Degree:            talent.Degree,
		GradYear:          talent.GradYear,
		Phone:             talent.Phone,
		Email:             talent.Email,
		ResumeObjectKey:   talent.ResumeObjectKey,
		SourceScreeningID: talent.SourceScreeningID,
		Skills:            names,
		CreatedAt:         talent.CreatedAt,
	}
}

// Graph DTOs follow the node/edge shape the UI renders directly.

type graphNode struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Label string `json:"label"`
}

type graphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

type graphResponse struct {
	Nodes []graphNode `json:"nodes"`
	Edges []graphEdge `json:"edges"`
}

func toGraphResponse(data GraphData) graphResponse {
	resp := graphResponse{
		Nodes: make([]graphNode, 0, len(data.Talents)+len(data.Skills)),
		Edges: make([]graphEdge, 0, len(data.Links)),
	}
	for _, talent := range data.Talents {
		label := "Unnamed"
		if talent.Name != nil && *talent.Name != "" {
			label = *talent.Name
		}
		resp.Nodes = append(resp.Nodes, graphNode{
			ID:    "talent-" + talent.ID,
			Type:  "talent",
			Label: label,
		})
	}
	for _, skill := range data.Skills {
		resp.Nodes = append(resp.Nodes, graphNode{
			ID:    "skill-" + skill.ID,
			Type:  "skill",
			Label: skill.Name,
		})
	}
	for _, link := range data.Links {
		resp.Edges = append(resp.Edges, graphEdge{
			Source: "talent-" + link.TalentID,
			Target: "skill-" + link.SkillID,
			Type:   "has_skill",
		})
	}
	return resp
}
