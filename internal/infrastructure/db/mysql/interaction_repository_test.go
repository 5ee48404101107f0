package mysql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	gosql "github.com/go-sql-driver/mysql"

	"github.com/prospectius/crm-backend/internal/core/domain"
)

func newTestInteractionRepo(t *testing.T) (*InteractionRepository, sqlmock.Sqlmock) {
	pool, mock := newTestPool(t)
	return NewInteractionRepository(pool, NewExecutor(pool)), mock
}

func TestInteractionRepository_InsertAndTouchProspect(t *testing.T) {
	repo, mock := newTestInteractionRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO Interaction")).
		WithArgs(int64(42), int64(7), "appel", "rappeler lundi").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE Prospect SET date_update = NOW() WHERE id_prospect = ?")).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	in := &domain.Interaction{
		ProspectID: 42,
		CompteID:   7,
		Type:       domain.InteractionAppel,
		Note:       "rappeler lundi",
	}
	if err := repo.InsertAndTouchProspect(context.Background(), in); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if in.ID != 5 {
		t.Fatalf("generated id not captured: %d", in.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestInteractionRepository_InsertAndTouchProspect_RollsBack(t *testing.T) {
	repo, mock := newTestInteractionRepo(t)

	fk := &gosql.MySQLError{Number: 1452, Message: "a foreign key constraint fails"}
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO Interaction")).
		WillReturnError(fk)
	mock.ExpectRollback()

	err := repo.InsertAndTouchProspect(context.Background(), &domain.Interaction{
		ProspectID: 404,
		CompteID:   7,
		Type:       domain.InteractionEmail,
	})
	if domain.KindOf(err) != domain.FaultConstraint {
		t.Fatalf("expected constraint fault, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("rollback not issued: %v", err)
	}
}

func TestInteractionRepository_ListByProspect_JoinsAuthor(t *testing.T) {
	repo, mock := newTestInteractionRepo(t)

	when := time.Date(2026, 4, 2, 14, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id_interaction", "id_prospect", "id_compte", "type", "note", "date_interaction",
		"createur_username", "createur_nom", "createur_prenom",
	}).AddRow(int64(5), int64(42), int64(7), []byte("appel"), []byte("rappeler lundi"), when,
		[]byte("jdupont"), []byte("Dupont"), []byte("Jean"))

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY i.date_interaction DESC")).
		WithArgs(int64(42)).
		WillReturnRows(rows)

	history, err := repo.ListByProspect(context.Background(), 42)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(history))
	}
	entry := history[0]
	if entry.Type != domain.InteractionAppel || !entry.DateInteraction.Equal(when) {
		t.Fatalf("unexpected entry: %+v", entry.Interaction)
	}
	if entry.CreateurUsername != "jdupont" || entry.CreateurPrenom != "Jean" {
		t.Fatalf("author join not scanned: %+v", entry)
	}
}

func TestInteractionRepository_Delete_PlainWhenNoRecompute(t *testing.T) {
	repo, mock := newTestInteractionRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM Interaction WHERE id_interaction = ?")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows, err := repo.Delete(context.Background(), 5, false)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row, got %d", rows)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestInteractionRepository_Delete_RecomputesParentTimestamp(t *testing.T) {
	repo, mock := newTestInteractionRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id_prospect FROM Interaction WHERE id_interaction = ?")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id_prospect"}).AddRow(int64(42)))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM Interaction WHERE id_interaction = ?")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("COALESCE")).
		WithArgs(int64(42), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rows, err := repo.Delete(context.Background(), 5, true)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row, got %d", rows)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestInteractionRepository_Delete_RecomputeMissingInteraction(t *testing.T) {
	repo, mock := newTestInteractionRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id_prospect FROM Interaction")).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id_prospect"}))
	mock.ExpectCommit()

	rows, err := repo.Delete(context.Background(), 404, true)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected 0 rows, got %d", rows)
	}
}
