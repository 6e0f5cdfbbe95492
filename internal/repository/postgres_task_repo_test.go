package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/hitoshi/taskboard/internal/model"
)

func taskColumns() []string {
	return []string{"id", "user_id", "title", "description", "status", "created_at", "updated_at"}
}

func TestTaskRepo_Create_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresTaskRepo(db)

	now := time.Now()
	task := &model.Task{
		ID:          "task-1",
		UserID:      "user-1",
		Title:       "買い物",
		Description: "牛乳を買う",
		Status:      model.StatusNotStarted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tasks")).
		WithArgs("task-1", "user-1", "買い物", "牛乳を買う", "not_started", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), task); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestTaskRepo_ListByUserID_ScopedToUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresTaskRepo(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM tasks WHERE user_id = $1 ORDER BY created_at")).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(taskColumns()).
			AddRow("t1", "user-1", "買い物", "牛乳", "not_started", now, now).
			AddRow("t2", "user-1", "掃除", "リビング", "done", now, now))

	tasks, err := repo.ListByUserID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("len(tasks) = %d, want 2", len(tasks))
	}
	if tasks[0].ID != "t1" || tasks[1].ID != "t2" {
		t.Error("tasks should be returned in query order")
	}
	if tasks[1].Status != model.StatusDone {
		t.Errorf("status = %q, want %q", tasks[1].Status, model.StatusDone)
	}
}

func TestTaskRepo_ListByUserID_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresTaskRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM tasks WHERE user_id = $1")).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(taskColumns()))

	tasks, err := repo.ListByUserID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("len(tasks) = %d, want 0", len(tasks))
	}
}

func TestTaskRepo_FindByID_NotFound_ReturnsNilWithoutError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresTaskRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM tasks WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(taskColumns()))

	task, err := repo.FindByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if task != nil {
		t.Errorf("expected nil task, got %+v", task)
	}
}

func TestTaskRepo_Update_PartialPatch_SendsNilForUnsetFields(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresTaskRepo(db)

	now := time.Now()
	status := model.StatusDone

	// title/descriptionはnilのまま渡り、COALESCEで既存値が維持される
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE tasks")).
		WithArgs(nil, nil, "done", "task-1", "user-1").
		WillReturnRows(sqlmock.NewRows(taskColumns()).
			AddRow("task-1", "user-1", "買い物", "牛乳", "done", now, now))

	updated, err := repo.Update(context.Background(), "user-1", "task-1", model.TaskPatch{Status: &status})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Status != model.StatusDone {
		t.Errorf("status = %q, want %q", updated.Status, model.StatusDone)
	}
	if updated.Title != "買い物" {
		t.Errorf("title = %q, want unchanged %q", updated.Title, "買い物")
	}
}

func TestTaskRepo_Update_OtherUsersTask_ReturnsNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresTaskRepo(db)

	title := "乗っ取り"
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $4 AND user_id = $5")).
		WithArgs("乗っ取り", nil, nil, "task-1", "attacker").
		WillReturnRows(sqlmock.NewRows(taskColumns()))

	updated, err := repo.Update(context.Background(), "attacker", "task-1", model.TaskPatch{Title: &title})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// 他ユーザー所有のタスクは存在しない行と同じ扱い
	if updated != nil {
		t.Errorf("expected nil, got %+v", updated)
	}
}

func TestTaskRepo_DeleteByID_Deleted_ReturnsTrue(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresTaskRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks WHERE id = $1 AND user_id = $2")).
		WithArgs("task-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.DeleteByID(context.Background(), "user-1", "task-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !deleted {
		t.Error("expected deleted = true")
	}
}

func TestTaskRepo_DeleteByID_NoMatchingRow_ReturnsFalse(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresTaskRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks")).
		WithArgs("task-1", "attacker").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteByID(context.Background(), "attacker", "task-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if deleted {
		t.Error("expected deleted = false for a row owned by another user")
	}
}

func TestTaskRepo_DeleteByID_DBError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresTaskRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks")).
		WillReturnError(errors.New("connection reset"))

	if _, err := repo.DeleteByID(context.Background(), "user-1", "task-1"); err == nil {
		t.Error("expected error")
	}
}
