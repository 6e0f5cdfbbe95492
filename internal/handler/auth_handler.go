package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/taskboard/internal/auth"
	"github.com/hitoshi/taskboard/internal/middleware"
	"github.com/hitoshi/taskboard/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	Register(ctx context.Context, in auth.RegisterInput) error
	Login(ctx context.Context, email, password string) (*auth.LoginResult, error)
	GoogleLogin(ctx context.Context, idToken string) (*auth.LoginResult, error)
}

// LoginMetricsRecorder はログイン結果の記録に必要なインターフェース。
// metrics.Recorderの部分集合として定義する。
type LoginMetricsRecorder interface {
	RecordLoginSuccess(method string)
	RecordLoginFailure(method string)
}

// signupRequest はPOST /signupのリクエストボディ。
type signupRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// loginRequest はPOST /loginのリクエストボディ。
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// googleLoginRequest はPOST /google-loginのリクエストボディ。
type googleLoginRequest struct {
	IDToken string `json:"idToken"`
}

// userResponse はログインレスポンスに含めるユーザー情報の射影。
type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// loginResponse はログイン成功時のレスポンスボディ。
type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// messageResponse はメッセージのみのレスポンスボディ。
type messageResponse struct {
	Message string `json:"message"`
}

// AuthHandler は認証関連のHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
	metrics LoginMetricsRecorder
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface, metrics LoginMetricsRecorder) *AuthHandler {
	return &AuthHandler{
		service: service,
		metrics: metrics,
	}
}

// Signup は新規ユーザー登録を処理する。
// POST /signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("リクエストボディの形式が正しくありません。"))
		return
	}

	err := h.service.Register(r.Context(), auth.RegisterInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "ユーザー登録が完了しました。"})
}

// Login はパスワードログインを処理する。
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("リクエストボディの形式が正しくありません。"))
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.metrics.RecordLoginFailure("password")
		writeServiceError(w, r, err)
		return
	}

	h.metrics.RecordLoginSuccess("password")
	writeJSON(w, http.StatusOK, toLoginResponse(result))
}

// GoogleLogin はGoogleのIDトークンによるログインを処理する。
// POST /google-login
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("リクエストボディの形式が正しくありません。"))
		return
	}

	result, err := h.service.GoogleLogin(r.Context(), req.IDToken)
	if err != nil {
		h.metrics.RecordLoginFailure("google")
		writeServiceError(w, r, err)
		return
	}

	h.metrics.RecordLoginSuccess("google")
	writeJSON(w, http.StatusOK, toLoginResponse(result))
}

// toLoginResponse はサービス層の結果をレスポンスボディに変換する。
func toLoginResponse(result *auth.LoginResult) loginResponse {
	return loginResponse{
		Token: result.Token,
		User: userResponse{
			ID:    result.User.ID,
			Email: result.User.Email,
			Name:  result.User.Name,
		},
	}
}
