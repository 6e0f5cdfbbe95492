// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// 認証手段はパスワード（PasswordHashあり）またはGoogleログイン（GoogleIDあり）の
// 少なくとも一方を必ず持つ。Googleログインで作成されたアカウントには
// パスワードハッシュは設定されない。
type User struct {
	ID           string
	Email        string
	PasswordHash string // パスワードアカウントのみ。bcryptハッシュ。
	GoogleID     string // Googleアカウントのみ。IDトークンのsubクレーム。
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName は表示用のフルネームを返す。
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// HasPassword はパスワード認証が可能なアカウントかどうかを返す。
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}
