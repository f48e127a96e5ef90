package repos

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func dryRunUpdateDB(t *testing.T, capture *string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	err = db.Callback().Update().After("gorm:update").Register("capture_sql", func(tx *gorm.DB) {
		*capture = tx.Statement.SQL.String()
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}
	return db
}

// Heartbeat must only refresh a run that is still running; a run another
// worker already failed or finished stays untouched.
func TestHeartbeatScopedToRunningRun(t *testing.T) {
	var sql string
	db := dryRunUpdateDB(t, &sql)
	repo := NewGenerationRunRepo(db, repoTestLogger(t))

	if err := repo.Heartbeat(context.Background(), nil, uuid.New()); err != nil {
		t.Fatalf("Heartbeat: %v", err)
	}

	if sql == "" {
		t.Fatal("no update statement was built")
	}
	if !strings.Contains(sql, "heartbeat_at") {
		t.Errorf("statement does not touch heartbeat_at: %q", sql)
	}
	if !strings.Contains(sql, "status") {
		t.Errorf("statement not limited to the running status: %q", sql)
	}
}

func TestHeartbeatNilIDIsNoop(t *testing.T) {
	var sql string
	db := dryRunUpdateDB(t, &sql)
	repo := NewGenerationRunRepo(db, repoTestLogger(t))

	if err := repo.Heartbeat(context.Background(), nil, uuid.Nil); err != nil {
		t.Fatalf("Heartbeat: %v", err)
	}
	if sql != "" {
		t.Errorf("expected no statement for the nil id, got %q", sql)
	}
}
