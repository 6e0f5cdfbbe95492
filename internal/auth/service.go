// Package auth はユーザー登録、ログイン、Googleログインと
// アクセストークンの発行・検証を提供する。
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/taskboard/internal/model"
	"github.com/hitoshi/taskboard/internal/repository"
)

// RegisterInput は登録リクエストの入力を表す。
type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// UserProjection はログインレスポンスに含める最小限のユーザー情報。
type UserProjection struct {
	ID    string
	Email string
	Name  string
}

// LoginResult はログイン成功時の結果を表す。
type LoginResult struct {
	Token string
	User  UserProjection
}

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	BcryptCost int // bcryptのコストファクタ
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	users    repository.UserRepository
	verifier IDTokenVerifier
	tokens   *TokenIssuer
	config   ServiceConfig
}

// NewService はServiceを生成する。
func NewService(
	users repository.UserRepository,
	verifier IDTokenVerifier,
	tokens *TokenIssuer,
	config ServiceConfig,
) *Service {
	if config.BcryptCost == 0 {
		config.BcryptCost = 10
	}
	return &Service{
		users:    users,
		verifier: verifier,
		tokens:   tokens,
		config:   config,
	}
}

// Register は新規ユーザーを登録する。
// 検証はストレージアクセス前に行い、平文パスワードは保存もログ出力もしない。
// 成功してもトークンは発行しない。ログインは別途行う。
func (s *Service) Register(ctx context.Context, in RegisterInput) error {
	if apiErr := validateRegisterInput(in); apiErr != nil {
		return apiErr
	}

	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return model.NewEmailInUseError()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.config.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// 重複チェックと作成の間に同一メールで登録された場合
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.NewEmailInUseError()
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)
	return nil
}

// Login はメールアドレスとパスワードでログインし、アクセストークンを発行する。
// Googleログイン専用アカウント（パスワードハッシュなし）への
// パスワードログインは拒否する。
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if apiErr := validateLoginInput(email, password); apiErr != nil {
		return nil, apiErr
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}
	if !user.HasPassword() {
		return nil, model.NewWrongAuthMethodError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, model.NewInvalidCredentialsError()
	}

	result, err := s.issueFor(user)
	if err != nil {
		return nil, err
	}

	slog.Info("user logged in", slog.String("user_id", user.ID))
	return result, nil
}

// GoogleLogin はGoogleのIDトークンでログインし、アクセストークンを発行する。
// 未登録の場合はパスワードなしのユーザーを自動作成する。
// 既存ユーザーの検索はGoogleのsubまたはメールアドレスのOR条件で行うため、
// 同一メールアドレスの既存パスワードアカウントにもログインできる。
func (s *Service) GoogleLogin(ctx context.Context, idToken string) (*LoginResult, error) {
	if idToken == "" {
		return nil, model.NewValidationError("idTokenを入力してください。")
	}

	claims, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		slog.Warn("google ID token verification failed", slog.String("error", err.Error()))
		return nil, model.NewInvalidIDTokenError()
	}
	if !claims.EmailVerified {
		return nil, model.NewInvalidIDTokenError()
	}

	user, err := s.users.FindByGoogleIDOrEmail(ctx, claims.Sub, claims.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user == nil {
		now := time.Now()
		user = &model.User{
			ID:        uuid.New().String(),
			Email:     claims.Email,
			GoogleID:  claims.Sub,
			FirstName: claims.GivenName,
			LastName:  claims.FamilyName,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		slog.Info("new user created via google login",
			slog.String("user_id", user.ID),
			slog.String("email", user.Email),
		)
	} else {
		slog.Info("existing user logged in via google",
			slog.String("user_id", user.ID),
		)
	}

	return s.issueFor(user)
}

// issueFor はユーザーに対してアクセストークンを発行し、
// ユーザー情報の最小限の射影とともに返す。
func (s *Service) issueFor(user *model.User) (*LoginResult, error) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResult{
		Token: token,
		User: UserProjection{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.DisplayName(),
		},
	}, nil
}
