package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/taskboard/internal/middleware"
	"github.com/hitoshi/taskboard/internal/model"
	"github.com/hitoshi/taskboard/internal/task"
)

// TaskServiceInterface はタスクハンドラーが必要とするサービスインターフェース。
type TaskServiceInterface interface {
	Create(ctx context.Context, userID, title, description string) (*model.Task, error)
	ListGrouped(ctx context.Context, userID string) (*task.GroupedTasks, error)
	Edit(ctx context.Context, userID, taskID string, in task.EditInput) (*model.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
}

// createTaskRequest はPOST /tasksのリクエストボディ。
type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// editTaskRequest はPUT /tasks/{id}のリクエストボディ。
// 省略されたフィールドは変更しない。
type editTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// taskResponse はタスク1件のレスポンスボディ。
type taskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// groupedTasksResponse はGET /tasksのレスポンスボディ。
type groupedTasksResponse struct {
	NotStarted []taskResponse `json:"notStarted"`
	InProgress []taskResponse `json:"inProgress"`
	Done       []taskResponse `json:"done"`
}

// TaskHandler はタスク関連のHTTPハンドラー。
// すべてのエンドポイントは認証ミドルウェアの通過を前提とする。
type TaskHandler struct {
	service TaskServiceInterface
}

// NewTaskHandler はTaskHandlerを生成する。
func NewTaskHandler(service TaskServiceInterface) *TaskHandler {
	return &TaskHandler{service: service}
}

// Create は新規タスク作成を処理する。
// POST /tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized,
			model.NewUnauthorizedError("認証情報が見つかりません。"))
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("リクエストボディの形式が正しくありません。"))
		return
	}

	created, err := h.service.Create(r.Context(), identity.UserID, req.Title, req.Description)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTaskResponse(created))
}

// List は認証済みユーザーのタスクをステータス別に分類して返す。
// GET /tasks
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized,
			model.NewUnauthorizedError("認証情報が見つかりません。"))
		return
	}

	grouped, err := h.service.ListGrouped(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, groupedTasksResponse{
		NotStarted: toTaskResponses(grouped.NotStarted),
		InProgress: toTaskResponses(grouped.InProgress),
		Done:       toTaskResponses(grouped.Done),
	})
}

// Edit はタスクの部分更新を処理する。
// PUT /tasks/{id}
func (h *TaskHandler) Edit(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized,
			model.NewUnauthorizedError("認証情報が見つかりません。"))
		return
	}

	taskID := chi.URLParam(r, "id")

	var req editTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("リクエストボディの形式が正しくありません。"))
		return
	}

	in := task.EditInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := model.TaskStatus(*req.Status)
		in.Status = &status
	}

	updated, err := h.service.Edit(r.Context(), identity.UserID, taskID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(updated))
}

// Delete はタスクの削除を処理する。
// DELETE /tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized,
			model.NewUnauthorizedError("認証情報が見つかりません。"))
		return
	}

	taskID := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), identity.UserID, taskID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "タスクを削除しました。"})
}

// toTaskResponse はタスクをレスポンスボディに変換する。
func toTaskResponse(t *model.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// toTaskResponses はタスクのスライスをレスポンスボディに変換する。
// nilスライスも空配列としてシリアライズする。
func toTaskResponses(tasks []*model.Task) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	return out
}
