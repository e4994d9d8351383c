package talents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func resumeRowColumns() []string {
	return []string{
		"file_object_key", "extracted_name", "extracted_school", "extracted_major",
		"extracted_degree", "extracted_grad_year", "extracted_phone", "extracted_email",
		"extracted_skills",
	}
}

func TestPGPromoteHappyPath(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM screening_resumes").
		WithArgs("res-1").
		WillReturnRows(sqlmock.NewRows(resumeRowColumns()).
			AddRow("resumes/res-1.pdf", "张伟", "清华大学", nil, "硕士", 2022, nil, nil, []byte(`["Go","Go"]`)))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("res-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO talents").
		WillReturnResult(sqlmock.NewResult(1, 1))
	// Duplicate names hit the same skill row; only one link is written.
	mock.ExpectQuery("INSERT INTO skills").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).AddRow("skill-1", "Go", now))
	mock.ExpectExec("INSERT INTO talent_skills").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("INSERT INTO skills").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).AddRow("skill-1", "Go", now))
	mock.ExpectExec("UPDATE screening_resumes").
		WithArgs("res-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	talent, skills, err := repo.PromoteFromScreening(context.Background(), "res-1", nil, false)
	if err != nil {
		t.Fatalf("PromoteFromScreening: %v", err)
	}
	if talent.SourceScreeningID != "res-1" {
		t.Fatalf("source id = %s", talent.SourceScreeningID)
	}
	if talent.Name == nil || *talent.Name != "张伟" {
		t.Fatalf("name = %v", talent.Name)
	}
	if talent.GradYear == nil || *talent.GradYear != 2022 {
		t.Fatalf("grad year = %v", talent.GradYear)
	}
	if len(skills) != 1 || skills[0].ID != "skill-1" {
		t.Fatalf("skills = %+v", skills)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGPromoteConflictRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM screening_resumes").
		WithArgs("res-1").
		WillReturnRows(sqlmock.NewRows(resumeRowColumns()).
			AddRow("resumes/res-1.pdf", nil, nil, nil, nil, nil, nil, nil, nil))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("res-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, _, err = repo.PromoteFromScreening(context.Background(), "res-1", nil, false)
	if !errors.Is(err, ErrAlreadyPromoted) {
		t.Fatalf("expected ErrAlreadyPromoted, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGPromoteSkillFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM screening_resumes").
		WithArgs("res-1").
		WillReturnRows(sqlmock.NewRows(resumeRowColumns()).
			AddRow("resumes/res-1.pdf", "张伟", nil, nil, nil, nil, nil, nil, []byte(`["Go"]`)))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("res-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO talents").
		WillReturnResult(sqlmock.NewResult(1, 1))
	// A failure after the talent insert must roll the whole promotion back:
	// no is_screened update, no commit.
	mock.ExpectQuery("INSERT INTO skills").
		WillReturnError(errors.New("skill upsert failed"))
	mock.ExpectRollback()

	_, _, err = repo.PromoteFromScreening(context.Background(), "res-1", nil, false)
	if err == nil {
		t.Fatalf("expected skill upsert failure to surface")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGPromoteMissingResumeIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM screening_resumes").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(resumeRowColumns()))
	mock.ExpectRollback()

	_, _, err = repo.PromoteFromScreening(context.Background(), "missing", nil, false)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
