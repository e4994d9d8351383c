package conditions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateMarshalsCriteria(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	cond := Condition{
		ID:          "cond-1",
		Name:        "2022 CS masters",
		Description: "campus hire batch",
		Criteria: Criteria{
			Majors:      []string{"计算机科学"},
			GradYearMin: intp(2022),
		},
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO screening_conditions").
		WithArgs(
			cond.ID,
			cond.Name,
			cond.Description,
			[]byte(`{"majors":["计算机科学"],"grad_year_min":2022}`),
			cond.Status,
			cond.CreatedAt,
			cond.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), cond); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT (.+) FROM screening_conditions").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "criteria", "status", "created_at", "updated_at"}))

	_, err = repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoGetByIDDegradesMalformedCriteria(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "name", "description", "criteria", "status", "created_at", "updated_at"}).
		AddRow("cond-1", "broken", nil, []byte(`{"majors": [`), StatusActive, now, now)
	mock.ExpectQuery("SELECT (.+) FROM screening_conditions").
		WithArgs("cond-1").
		WillReturnRows(rows)

	cond, err := repo.GetByID(context.Background(), "cond-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	// A malformed stored criteria behaves as match-all.
	if !cond.Criteria.Matches(Candidate{}) {
		t.Fatalf("malformed criteria should be vacuous")
	}
}

func TestPGRepoDeleteMissingRowIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("UPDATE screening_conditions").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
