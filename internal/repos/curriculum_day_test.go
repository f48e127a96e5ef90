package repos

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

	"github.com/Tetraslam/onemonth-dev/internal/logger"
)

// dryRunDB builds statements without a live connection and hands the
// final SQL of each delete to capture.
func dryRunDB(t *testing.T, capture *string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	err = db.Callback().Delete().After("gorm:delete").Register("capture_sql", func(tx *gorm.DB) {
		*capture = tx.Statement.SQL.String()
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}
	return db
}

func repoTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

// A rerun of a generation reinserts the same (curriculum_id, day_number)
// pairs inside one transaction. The old rows must actually leave the
// unique index, so the delete has to be a hard delete rather than a
// deleted_at update.
func TestDeleteByCurriculumIDHardDeletes(t *testing.T) {
	var sql string
	db := dryRunDB(t, &sql)
	repo := NewCurriculumDayRepo(db, repoTestLogger(t))

	if err := repo.DeleteByCurriculumID(context.Background(), nil, uuid.New()); err != nil {
		t.Fatalf("DeleteByCurriculumID: %v", err)
	}

	if sql == "" {
		t.Fatal("no delete statement was built")
	}
	if !strings.HasPrefix(sql, "DELETE FROM") {
		t.Errorf("statement = %q, want a hard DELETE", sql)
	}
	if strings.Contains(sql, "deleted_at") {
		t.Errorf("statement touches deleted_at, still a soft delete: %q", sql)
	}
	if !strings.Contains(sql, "curriculum_id") {
		t.Errorf("statement not scoped to the curriculum: %q", sql)
	}
}

func TestDeleteByCurriculumIDNilIDIsNoop(t *testing.T) {
	var sql string
	db := dryRunDB(t, &sql)
	repo := NewCurriculumDayRepo(db, repoTestLogger(t))

	if err := repo.DeleteByCurriculumID(context.Background(), nil, uuid.Nil); err != nil {
		t.Fatalf("DeleteByCurriculumID: %v", err)
	}
	if sql != "" {
		t.Errorf("expected no statement for the nil id, got %q", sql)
	}
}
