// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, task, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodeEmailInUse         = "EMAIL_IN_USE"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeWrongAuthMethod    = "WRONG_AUTH_METHOD"
	ErrCodeInvalidIDToken     = "INVALID_ID_TOKEN"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeTaskNotFound       = "TASK_NOT_FOUND"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// NewValidationError は入力検証エラーを生成する。
// messageには最初に違反した制約のメッセージを設定する。
func NewValidationError(message string) *APIError {
	return &APIError{
		Code:     ErrCodeValidationFailed,
		Message:  message,
		Category: "validation",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewEmailInUseError はメールアドレス重複エラーを生成する。
func NewEmailInUseError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailInUse,
		Message:  "このメールアドレスは既に使用されています。",
		Category: "validation",
		Action:   "別のメールアドレスで登録するか、ログインしてください。",
	}
}

// NewUserNotFoundError はユーザー未検出エラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "ユーザーが見つかりません。",
		Category: "auth",
		Action:   "メールアドレスを確認するか、新規登録してください。",
	}
}

// NewInvalidCredentialsError は認証情報不一致エラーを生成する。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "メールアドレスまたはパスワードが正しくありません。",
		Category: "auth",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewWrongAuthMethodError は認証方式不一致エラーを生成する。
// Googleログイン専用アカウントに対するパスワードログイン試行時に返す。
func NewWrongAuthMethodError() *APIError {
	return &APIError{
		Code:     ErrCodeWrongAuthMethod,
		Message:  "このアカウントはパスワードログインに対応していません。",
		Category: "auth",
		Action:   "Googleログインをご利用ください。",
	}
}

// NewInvalidIDTokenError はIDトークン検証失敗エラーを生成する。
// 期限切れ・署名不正・audience不一致・検証エンドポイント到達不能は
// すべてこのエラーに集約される。呼び出し側の対処が同一のため。
func NewInvalidIDTokenError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidIDToken,
		Message:  "GoogleのIDトークンを検証できませんでした。",
		Category: "auth",
		Action:   "再度Googleログインをお試しください。",
	}
}

// NewUnauthorizedError は未認証エラーを生成する。
// messageにはトークン欠落・形式不正・検証失敗のいずれかの理由を設定する。
func NewUnauthorizedError(message string) *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  message,
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}

// NewTaskNotFoundError はタスク未検出エラーを生成する。
// 他ユーザー所有のタスクも未検出として扱う。
func NewTaskNotFoundError(taskID string) *APIError {
	return &APIError{
		Code:     ErrCodeTaskNotFound,
		Message:  fmt.Sprintf("指定されたタスクが見つかりません: %s", taskID),
		Category: "task",
		Action:   "タスクIDを確認してください。",
	}
}
