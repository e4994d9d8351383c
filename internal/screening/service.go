package screening

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"screening-backend/internal/conditions"
	"screening-backend/internal/extract"
	"screening-backend/internal/llm"
	"screening-backend/internal/shared/metrics"
	"screening-backend/internal/shared/storage/object"
	"screening-backend/internal/shared/telemetry"
	"screening-backend/internal/shared/util"
)

// Extractor parses a PDF into text and embedded images.
type Extractor interface {
	Parse(ctx context.Context, data []byte) (extract.Result, error)
}

// ConditionSource provides the active condition set for matching.
type ConditionSource interface {
	ActiveSet(ctx context.Context) ([]conditions.Condition, error)
}

// Service runs the ingestion pipeline and serves resume listings.
type Service struct {
	Store      object.ObjectStore
	Parser     Extractor
	LLM        llm.Client
	Conditions ConditionSource
	Repo       ResumesRepo

	ResumePrefix string
	ImagePrefix  string
}

// Ingest runs the full pipeline for one uploaded PDF: store the original,
// extract text and images, call the LLM, normalize, match active
// conditions and persist the row. Any upstream failure aborts before the
// row is written.
func (s *Service) Ingest(ctx context.Context, fileName string, r io.Reader) (Resume, error) {
	start := time.Now()
	res, err := s.ingest(ctx, fileName, r)
	if err != nil {
		metrics.IncResumeIngestFailed()
		return Resume{}, err
	}
	metrics.IncResumeIngested()
	metrics.ObserveIngestDurationMs(float64(time.Since(start).Milliseconds()))
	return res, nil
}

func (s *Service) ingest(ctx context.Context, fileName string, r io.Reader) (Resume, error) {
	fileName, err := util.SanitizeFileName(fileName)
	if err != nil {
		return Resume{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !strings.HasSuffix(strings.ToLower(fileName), ".pdf") {
		return Resume{}, fmt.Errorf("%w: only PDF files are accepted", ErrInvalidInput)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Resume{}, fmt.Errorf("%w: unable to read upload", ErrInvalidInput)
	}
	if len(data) == 0 {
		return Resume{}, fmt.Errorf("%w: empty file", ErrInvalidInput)
	}

	id := uuid.NewString()
	fileKey := s.resumePrefix() + id + ".pdf"
	if _, err := s.Store.Save(ctx, fileKey, "application/pdf", bytes.NewReader(data)); err != nil {
		return Resume{}, fmt.Errorf("%w: object store: %v", ErrDependency, err)
	}

	parsed, err := s.Parser.Parse(ctx, data)
	if err != nil {
		if errors.Is(err, extract.ErrEmptyDocument) {
			return Resume{}, fmt.Errorf("%w: no extractable text", ErrInvalidInput)
		}
		return Resume{}, fmt.Errorf("%w: pdf extraction: %v", ErrDependency, err)
	}

	imageKeys := make([]string, 0, len(parsed.Images))
	for i, img := range parsed.Images {
		key := s.imagePrefix() + id + "/" + strconv.Itoa(i) + ".jpg"
		if _, err := s.Store.Save(ctx, key, "image/jpeg", bytes.NewReader(img)); err != nil {
			return Resume{}, fmt.Errorf("%w: object store: %v", ErrDependency, err)
		}
		imageKeys = append(imageKeys, key)
	}

	raw, err := s.LLM.ExtractFields(ctx, parsed.Text)
	if err != nil {
		if errors.Is(err, llm.ErrInvalidJSON) {
			// The model would not produce parseable output even after
			// the corrective re-prompt.
			return Resume{}, err
		}
		return Resume{}, fmt.Errorf("%w: llm extraction: %v", ErrDependency, err)
	}

	fields := Normalize(raw)

	active, err := s.Conditions.ActiveSet(ctx)
	if err != nil {
		return Resume{}, fmt.Errorf("%w: load conditions: %v", ErrDependency, err)
	}
	matched := matchConditions(fields, active)

	res := Resume{
		ID:                  id,
		FileObjectKey:       fileKey,
		Name:                fields.Name,
		School:              fields.School,
		Major:               fields.Major,
		Degree:              fields.Degree,
		GradYear:            fields.GradYear,
		Phone:               fields.Phone,
		Email:               fields.Email,
		Skills:              fields.Skills,
		ImageObjectKeys:     imageKeys,
		MatchedConditionIDs: matched,
		CreatedAt:           time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, res); err != nil {
		return Resume{}, err
	}

	telemetry.Info("resume ingested", map[string]any{
		"screening_id":  res.ID,
		"matched_count": len(matched),
		"skill_count":   len(res.Skills),
		"image_count":   len(imageKeys),
	})
	return res, nil
}

// matchConditions evaluates the candidate against the active set,
// preserving retrieval order so the result is deterministic.
func matchConditions(fields NormalizedFields, active []conditions.Condition) []string {
	cand := conditions.Candidate{
		Name:     fields.Name,
		School:   fields.School,
		Major:    fields.Major,
		Degree:   fields.Degree,
		GradYear: fields.GradYear,
	}
	matched := []string{}
	for _, cond := range active {
		if cond.Criteria.Matches(cand) {
			matched = append(matched, cond.ID)
		}
	}
	return matched
}

// Get returns a single resume.
func (s *Service) Get(ctx context.Context, id string) (Resume, error) {
	return s.Repo.GetByID(ctx, id)
}

// List returns one page of resumes plus the unpaginated total.
func (s *Service) List(ctx context.Context, f Filter) ([]Resume, int, error) {
	return s.Repo.List(ctx, f)
}

func (s *Service) resumePrefix() string {
	if s.ResumePrefix == "" {
		return "resumes/"
	}
	return s.ResumePrefix
}

func (s *Service) imagePrefix() string {
	if s.ImagePrefix == "" {
		return "resume-images/"
	}
	return s.ImagePrefix
}
