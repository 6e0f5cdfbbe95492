package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const defaultGoogleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// GoogleClaims はGoogleのIDトークンから抽出した検証済みクレームを表す。
type GoogleClaims struct {
	Sub           string
	Email         string
	EmailVerified bool
	GivenName     string
	FamilyName    string
}

// IDTokenVerifier はIDトークンの検証インターフェース。
// 将来的に複数IdPに対応するための抽象化。
type IDTokenVerifier interface {
	// Verify はIDトークンを検証し、クレームを返す。
	Verify(ctx context.Context, idToken string) (*GoogleClaims, error)
}

// GoogleVerifierConfig はGoogleTokenVerifierの設定。
type GoogleVerifierConfig struct {
	ClientID string

	// テスト用にオーバーライド可能なURL
	TokenInfoURL string
}

// GoogleTokenVerifier はGoogleのtokeninfoエンドポイントでIDトークンを検証する。
// 署名・有効期限の検証はエンドポイント側で行われ、audienceの一致は
// ここで設定されたクライアントIDと照合する。
type GoogleTokenVerifier struct {
	config GoogleVerifierConfig
}

// NewGoogleTokenVerifier はGoogleTokenVerifierを生成する。
func NewGoogleTokenVerifier(config GoogleVerifierConfig) *GoogleTokenVerifier {
	if config.TokenInfoURL == "" {
		config.TokenInfoURL = defaultGoogleTokenInfoURL
	}
	return &GoogleTokenVerifier{config: config}
}

// tokenInfoResponse はGoogleのtokeninfoエンドポイントのレスポンス。
// email_verifiedはJSON上で文字列の"true"/"false"として返る。
type tokenInfoResponse struct {
	Aud           string `json:"aud"`
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}

// Verify はIDトークンをtokeninfoエンドポイントで検証し、クレームを返す。
// 期限切れ・署名不正・形式不正はエンドポイントが非200を返すため、
// ネットワーク障害も含めすべて単一のエラーとして呼び出し元へ集約される。
func (v *GoogleTokenVerifier) Verify(ctx context.Context, idToken string) (*GoogleClaims, error) {
	endpoint := v.config.TokenInfoURL + "?" + url.Values{"id_token": {idToken}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create tokeninfo request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read tokeninfo response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token verification failed with status %d", resp.StatusCode)
	}

	var info tokenInfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse tokeninfo response: %w", err)
	}

	if info.Aud != v.config.ClientID {
		return nil, fmt.Errorf("token audience mismatch")
	}
	if info.Sub == "" {
		return nil, fmt.Errorf("empty sub in tokeninfo response")
	}

	return &GoogleClaims{
		Sub:           info.Sub,
		Email:         info.Email,
		EmailVerified: info.EmailVerified == "true",
		GivenName:     info.GivenName,
		FamilyName:    info.FamilyName,
	}, nil
}

// compile-time interface check
var _ IDTokenVerifier = (*GoogleTokenVerifier)(nil)
