package mysql

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	gosql "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"

	"github.com/prospectius/crm-backend/internal/core/domain"
)

// newTestExecutor wires an Executor to a sqlmock-backed pool.
func newTestExecutor(t *testing.T) (*Executor, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	pool, err := Connect(context.Background(), Config{MaxRetries: 1}, zerolog.Nop(),
		WithOpener(func(string) (*sql.DB, error) { return db, nil }),
	)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	return NewExecutor(pool), mock
}

func TestExecutor_Exec_ReportsResult(t *testing.T) {
	exec, mock := newTestExecutor(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO Prospect")).
		WithArgs("Moreau", "societe").
		WillReturnResult(sqlmock.NewResult(12, 1))

	res, err := exec.Exec(context.Background(), "INSERT INTO Prospect (nomp, type) VALUES (?, ?)", "Moreau", "societe")
	if err != nil {
		t.Fatalf("exec failed: %v", err)
	}
	if res.RowsAffected != 1 || res.LastInsertID != 12 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestExecutor_Exec_ConstraintFault(t *testing.T) {
	exec, mock := newTestExecutor(t)

	dup := &gosql.MySQLError{Number: 1062, Message: "Duplicate entry 'jdupont' for key 'username'"}
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO Account")).WillReturnError(dup)

	_, err := exec.Exec(context.Background(), "INSERT INTO Account (username) VALUES (?)", "jdupont")
	if domain.KindOf(err) != domain.FaultConstraint {
		t.Fatalf("expected constraint fault, got %v", err)
	}
	var myErr *gosql.MySQLError
	if !errors.As(err, &myErr) || myErr.Number != 1062 {
		t.Fatalf("driver error not preserved in chain: %v", err)
	}
}

func TestExecutor_QueryOne_Found(t *testing.T) {
	exec, mock := newTestExecutor(t)

	created := time.Date(2026, 4, 2, 10, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id_compte", "username", "date_creation"}).
		AddRow(int64(3), []byte("jdupont"), created)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).WithArgs(int64(3)).WillReturnRows(rows)

	record, err := exec.QueryOne(context.Background(), "SELECT id_compte, username, date_creation FROM Account WHERE id_compte = ?", int64(3))
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if record == nil {
		t.Fatalf("expected a record")
	}
	if record.Int64("id_compte") != 3 {
		t.Fatalf("Int64 accessor: %d", record.Int64("id_compte"))
	}
	if record.String("username") != "jdupont" {
		t.Fatalf("String accessor: %q", record.String("username"))
	}
	if !record.Time("date_creation").Equal(created) {
		t.Fatalf("Time accessor: %v", record.Time("date_creation"))
	}
}

func TestExecutor_QueryOne_Absent(t *testing.T) {
	exec, mock := newTestExecutor(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WillReturnRows(sqlmock.NewRows([]string{"id_compte"}))

	record, err := exec.QueryOne(context.Background(), "SELECT id_compte FROM Account WHERE id_compte = ?", int64(404))
	if err != nil {
		t.Fatalf("absence must not be an error, got %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil record, got %v", record)
	}
}

func TestExecutor_QueryAll_ScansEveryRow(t *testing.T) {
	exec, mock := newTestExecutor(t)

	rows := sqlmock.NewRows([]string{"status", "total"}).
		AddRow([]byte("nouveau"), int64(4)).
		AddRow([]byte("converti"), int64(2))
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY status")).WillReturnRows(rows)

	records, err := exec.QueryAll(context.Background(), "SELECT status, COUNT(*) AS total FROM Prospect GROUP BY status")
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].String("status") != "nouveau" || records[0].Int64("total") != 4 {
		t.Fatalf("unexpected first record: %v", records[0])
	}
	if records[1].String("status") != "converti" || records[1].Int64("total") != 2 {
		t.Fatalf("unexpected second record: %v", records[1])
	}
}

func TestExecutor_UnconnectedPool(t *testing.T) {
	exec := NewExecutor(&Pool{})

	if _, err := exec.Exec(context.Background(), "DELETE FROM Account"); domain.KindOf(err) != domain.FaultConfiguration {
		t.Fatalf("expected configuration fault, got %v", err)
	}
	if _, err := exec.QueryAll(context.Background(), "SELECT 1"); domain.KindOf(err) != domain.FaultConfiguration {
		t.Fatalf("expected configuration fault, got %v", err)
	}
}

func TestRecord_NullAndMissingColumns(t *testing.T) {
	record := Record{"nom": nil}

	if record.String("nom") != "" {
		t.Fatalf("NULL column must read as empty string")
	}
	if record.Int64("absent") != 0 {
		t.Fatalf("missing column must read as zero")
	}
	if !record.Time("absent").IsZero() {
		t.Fatalf("missing column must read as zero time")
	}
}
