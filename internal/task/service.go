// Package task はタスクのCRUDとステータス別グルーピングを提供する。
package task

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/hitoshi/taskboard/internal/model"
	"github.com/hitoshi/taskboard/internal/repository"
)

// GroupedTasks はステータス別に分類したタスク一覧を表す。
// 各グループ内の順序はストアの返却順（created_at昇順）。
type GroupedTasks struct {
	NotStarted []*model.Task
	InProgress []*model.Task
	Done       []*model.Task
}

// EditInput はタスクの部分更新入力を表す。nilフィールドは変更しない。
type EditInput struct {
	Title       *string
	Description *string
	Status      *model.TaskStatus
}

// Service はタスクに関するビジネスロジックを提供する。
// すべての操作は認証済みユーザーのIDにスコープされる。
type Service struct {
	tasks     repository.TaskRepository
	sanitizer *bluemonday.Policy
}

// NewService はServiceを生成する。
// タイトルと説明はStrictPolicyでサニタイズし、HTMLタグを除去して保存する。
func NewService(tasks repository.TaskRepository) *Service {
	return &Service{
		tasks:     tasks,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Create は新規タスクを作成する。ステータスはnot_startedで初期化される。
// タイトルと説明は必須。
func (s *Service) Create(ctx context.Context, userID, title, description string) (*model.Task, error) {
	title = s.sanitizer.Sanitize(title)
	description = s.sanitizer.Sanitize(description)

	if title == "" {
		return nil, model.NewValidationError("titleを入力してください。")
	}
	if description == "" {
		return nil, model.NewValidationError("descriptionを入力してください。")
	}

	now := time.Now()
	task := &model.Task{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      model.StatusNotStarted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ListGrouped は指定ユーザーの全タスクをステータス別に分類して返す。
// statusはDBのCHECK制約で3値に制限されているため、認識外の値は
// データ不整合としてエラーを返す。黙って欠落させることはしない。
func (s *Service) ListGrouped(ctx context.Context, userID string) (*GroupedTasks, error) {
	tasks, err := s.tasks.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	grouped := &GroupedTasks{
		NotStarted: []*model.Task{},
		InProgress: []*model.Task{},
		Done:       []*model.Task{},
	}
	for _, t := range tasks {
		switch t.Status {
		case model.StatusNotStarted:
			grouped.NotStarted = append(grouped.NotStarted, t)
		case model.StatusInProgress:
			grouped.InProgress = append(grouped.InProgress, t)
		case model.StatusDone:
			grouped.Done = append(grouped.Done, t)
		default:
			return nil, fmt.Errorf("task %s has unrecognized status %q", t.ID, t.Status)
		}
	}

	return grouped, nil
}

// Edit は指定ユーザー所有のタスクへ部分更新を適用し、更新後のレコードを返す。
// 他ユーザー所有のタスクと存在しないタスクは区別せずTASK_NOT_FOUNDを返す。
func (s *Service) Edit(ctx context.Context, userID, taskID string, in EditInput) (*model.Task, error) {
	if in.Title == nil && in.Description == nil && in.Status == nil {
		return nil, model.NewValidationError("更新するフィールドを少なくとも1つ指定してください。")
	}

	patch := model.TaskPatch{}

	if in.Title != nil {
		title := s.sanitizer.Sanitize(*in.Title)
		if title == "" {
			return nil, model.NewValidationError("titleを入力してください。")
		}
		patch.Title = &title
	}
	if in.Description != nil {
		description := s.sanitizer.Sanitize(*in.Description)
		if description == "" {
			return nil, model.NewValidationError("descriptionを入力してください。")
		}
		patch.Description = &description
	}
	if in.Status != nil {
		if !in.Status.IsValid() {
			return nil, model.NewValidationError("statusはnot_started、in_progress、doneのいずれかを指定してください。")
		}
		patch.Status = in.Status
	}

	task, err := s.tasks.Update(ctx, userID, taskID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if task == nil {
		return nil, model.NewTaskNotFoundError(taskID)
	}

	return task, nil
}

// Delete は指定ユーザー所有のタスクを削除する。
// 該当タスクがない場合はTASK_NOT_FOUNDを返す。
func (s *Service) Delete(ctx context.Context, userID, taskID string) error {
	deleted, err := s.tasks.DeleteByID(ctx, userID, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !deleted {
		return model.NewTaskNotFoundError(taskID)
	}
	return nil
}
