package talents

import (
	"context"
	"errors"
	"testing"
	"time"

	"screening-backend/internal/screening"
)

func seedResume(t *testing.T, src *screening.MemoryRepo, id string, skills []string) screening.Resume {
	t.Helper()
	name := "张伟"
	degree := "硕士"
	res := screening.Resume{
		ID:            id,
		FileObjectKey: "resumes/" + id + ".pdf",
		Name:          &name,
		Degree:        &degree,
		Skills:        skills,
		CreatedAt:     time.Now().UTC(),
	}
	if err := src.Create(context.Background(), res); err != nil {
		t.Fatalf("seed resume: %v", err)
	}
	return res
}

func TestPromoteCopiesResumeFieldsAndSkills(t *testing.T) {
	ctx := context.Background()
	src := screening.NewMemoryRepo()
	svc := &Service{Repo: NewMemoryRepo(src)}
	seedResume(t, src, "res-1", []string{"Go", " SQL ", ""})

	talent, skills, err := svc.Promote(ctx, "res-1", nil)
	if err != nil {
		t.Fatalf("Promote: %v", err)
	}
	if talent.SourceScreeningID != "res-1" {
		t.Fatalf("source id = %s", talent.SourceScreeningID)
	}
	if talent.Name == nil || *talent.Name != "张伟" {
		t.Fatalf("name not copied: %v", talent.Name)
	}
	if talent.ResumeObjectKey != "resumes/res-1.pdf" {
		t.Fatalf("resume key not copied: %s", talent.ResumeObjectKey)
	}
	if len(skills) != 2 || skills[0].Name != "Go" || skills[1].Name != "SQL" {
		t.Fatalf("skills = %+v", skills)
	}

	stored, err := src.GetByID(ctx, "res-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !stored.IsScreened {
		t.Fatalf("promotion must flip is_screened")
	}
}

func TestPromoteTwiceIsConflict(t *testing.T) {
	ctx := context.Background()
	src := screening.NewMemoryRepo()
	svc := &Service{Repo: NewMemoryRepo(src)}
	seedResume(t, src, "res-1", nil)

	if _, _, err := svc.Promote(ctx, "res-1", nil); err != nil {
		t.Fatalf("first Promote: %v", err)
	}
	if _, _, err := svc.Promote(ctx, "res-1", nil); !errors.Is(err, ErrAlreadyPromoted) {
		t.Fatalf("expected ErrAlreadyPromoted, got %v", err)
	}
}

func TestPromoteMissingResumeIsNotFound(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo(screening.NewMemoryRepo())}
	if _, _, err := svc.Promote(context.Background(), "nope", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

type failMarkSource struct {
	*screening.MemoryRepo
}

func (s *failMarkSource) MarkScreened(ctx context.Context, id string) error {
	return errors.New("mark screened failed")
}

func TestPromoteMarkFailureLeavesNoState(t *testing.T) {
	ctx := context.Background()
	src := screening.NewMemoryRepo()
	repo := NewMemoryRepo(&failMarkSource{src})
	svc := &Service{Repo: repo}
	seedResume(t, src, "res-1", []string{"Go"})

	if _, _, err := svc.Promote(ctx, "res-1", nil); err == nil {
		t.Fatalf("expected MarkScreened failure to surface")
	}

	graph, err := repo.Graph(ctx)
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	if len(graph.Talents) != 0 || len(graph.Skills) != 0 || len(graph.Links) != 0 {
		t.Fatalf("failed promotion must leave no state, got %+v", graph)
	}
	if len(repo.skillsByName) != 0 {
		t.Fatalf("failed promotion must not register skills, got %d", len(repo.skillsByName))
	}

	// The resume stays promotable once the fault clears.
	repo.Screening = src
	if _, _, err := svc.Promote(ctx, "res-1", nil); err != nil {
		t.Fatalf("retry after fault: %v", err)
	}
}

func TestPromoteDeduplicatesSkillNames(t *testing.T) {
	ctx := context.Background()
	src := screening.NewMemoryRepo()
	repo := NewMemoryRepo(src)
	svc := &Service{Repo: repo}
	seedResume(t, src, "res-1", []string{"java", "java"})

	_, skills, err := svc.Promote(ctx, "res-1", nil)
	if err != nil {
		t.Fatalf("Promote: %v", err)
	}
	if len(skills) != 1 || skills[0].Name != "java" {
		t.Fatalf("duplicate names must collapse onto one skill, got %+v", skills)
	}

	graph, err := repo.Graph(ctx)
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	if len(graph.Skills) != 1 || len(graph.Links) != 1 {
		t.Fatalf("expected 1 skill and 1 link, got %d/%d", len(graph.Skills), len(graph.Links))
	}
}

func TestPromoteSharesSkillsAcrossTalents(t *testing.T) {
	ctx := context.Background()
	src := screening.NewMemoryRepo()
	repo := NewMemoryRepo(src)
	svc := &Service{Repo: repo}
	seedResume(t, src, "res-1", []string{"Go"})
	seedResume(t, src, "res-2", []string{"Go", "SQL"})

	if _, _, err := svc.Promote(ctx, "res-1", nil); err != nil {
		t.Fatalf("Promote res-1: %v", err)
	}
	if _, _, err := svc.Promote(ctx, "res-2", nil); err != nil {
		t.Fatalf("Promote res-2: %v", err)
	}

	graph, err := repo.Graph(ctx)
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	if len(graph.Skills) != 2 {
		t.Fatalf("skill name must be global, got %d skills", len(graph.Skills))
	}
	if len(graph.Links) != 3 {
		t.Fatalf("expected 3 links, got %d", len(graph.Links))
	}
}

func TestPromoteEmptyOverrideSkipsSkills(t *testing.T) {
	ctx := context.Background()
	src := screening.NewMemoryRepo()
	repo := NewMemoryRepo(src)
	svc := &Service{Repo: repo}
	seedResume(t, src, "res-1", []string{"Go", "SQL"})

	_, skills, err := svc.Promote(ctx, "res-1", []string{})
	if err != nil {
		t.Fatalf("Promote: %v", err)
	}
	if len(skills) != 0 {
		t.Fatalf("empty override must suppress extracted skills, got %+v", skills)
	}

	graph, err := repo.Graph(ctx)
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	if len(graph.Links) != 0 {
		t.Fatalf("no links expected, got %d", len(graph.Links))
	}
}

func TestPromoteOverrideReplacesExtractedSkills(t *testing.T) {
	ctx := context.Background()
	src := screening.NewMemoryRepo()
	svc := &Service{Repo: NewMemoryRepo(src)}
	seedResume(t, src, "res-1", []string{"Go"})

	_, skills, err := svc.Promote(ctx, "res-1", []string{"Kubernetes"})
	if err != nil {
		t.Fatalf("Promote: %v", err)
	}
	if len(skills) != 1 || skills[0].Name != "Kubernetes" {
		t.Fatalf("override not applied, got %+v", skills)
	}
}

func TestGraphNodeAndEdgeShapes(t *testing.T) {
	ctx := context.Background()
	src := screening.NewMemoryRepo()
	repo := NewMemoryRepo(src)
	svc := &Service{Repo: repo}
	seedResume(t, src, "res-1", []string{"Go"})

	talent, _, err := svc.Promote(ctx, "res-1", nil)
	if err != nil {
		t.Fatalf("Promote: %v", err)
	}

	data, err := svc.Graph(ctx)
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	resp := toGraphResponse(data)
	if len(resp.Nodes) != 2 {
		t.Fatalf("expected talent + skill nodes, got %d", len(resp.Nodes))
	}
	if resp.Nodes[0].ID != "talent-"+talent.ID || resp.Nodes[0].Label != "张伟" {
		t.Fatalf("talent node = %+v", resp.Nodes[0])
	}
	if len(resp.Edges) != 1 || resp.Edges[0].Type != "has_skill" {
		t.Fatalf("edges = %+v", resp.Edges)
	}
	if resp.Edges[0].Source != "talent-"+talent.ID {
		t.Fatalf("edge source = %s", resp.Edges[0].Source)
	}
}
