// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"

	"github.com/hitoshi/taskboard/internal/model"
)

// ErrDuplicateEmail はメールアドレスの一意制約違反を表す。
// Createがusersテーブルのunique violationを検出した場合に返す。
var ErrDuplicateEmail = errors.New("email already in use")

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByEmail は指定メールアドレスのユーザーを取得する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByGoogleIDOrEmail はGoogleのsubまたはメールアドレスのいずれかが
	// 一致するユーザーを検索する。見つからない場合はnilを返す。
	// OR検索により、既存のパスワードアカウントへ同一メールアドレスの
	// Googleログインを紐付けられる。
	FindByGoogleIDOrEmail(ctx context.Context, googleID, email string) (*model.User, error)

	// Create はユーザーを作成する。
	// メールアドレスが重複する場合はErrDuplicateEmailを返す。
	Create(ctx context.Context, user *model.User) error
}

// TaskRepository はタスクデータの永続化インターフェース。
// UpdateとDeleteByIDは所有者スコープで動作し、他ユーザーのタスクは
// 存在しないものとして扱う。
type TaskRepository interface {
	// Create はタスクを作成する。
	Create(ctx context.Context, task *model.Task) error

	// ListByUserID は指定ユーザーの全タスクをcreated_at昇順で返す。
	ListByUserID(ctx context.Context, userID string) ([]*model.Task, error)

	// FindByID は指定IDのタスクを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Task, error)

	// Update は指定ユーザー所有のタスクへ部分更新を適用し、更新後のレコードを返す。
	// nilフィールドは変更しない。該当行がない場合はnilを返す。
	Update(ctx context.Context, userID, id string, patch model.TaskPatch) (*model.Task, error)

	// DeleteByID は指定ユーザー所有のタスクを削除する。
	// 削除した場合はtrue、該当行がない場合はfalseを返す。
	DeleteByID(ctx context.Context, userID, id string) (bool, error)
}
