// Package model はドメインモデルを定義する。
package model

import "time"

// TaskStatus はタスクのワークフロー状態を表す。
// 3値の閉じた列挙であり、DBのCHECK制約でも同じ集合に制限される。
type TaskStatus string

const (
	// StatusNotStarted は未着手状態。新規タスクのデフォルト。
	StatusNotStarted TaskStatus = "not_started"
	// StatusInProgress は進行中状態。
	StatusInProgress TaskStatus = "in_progress"
	// StatusDone は完了状態。
	StatusDone TaskStatus = "done"
)

// IsValid はstatusが認識される3値のいずれかであるかを返す。
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task はユーザー所有のタスクレコードを表す。
// UserIDは作成時に確定し、以後変更されない。
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Status      TaskStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskPatch はタスクの部分更新を表す。
// nilフィールドは変更しない。
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
}
