package auth

import (
	"net/mail"

	"github.com/hitoshi/taskboard/internal/model"
)

// 入力検証はストレージに触れる前に行い、最初に違反した制約の
// メッセージのみを返す。

// validateRegisterInput は登録入力を検証する。
func validateRegisterInput(in RegisterInput) *model.APIError {
	if len(in.FirstName) < 3 || len(in.FirstName) > 30 {
		return model.NewValidationError("firstNameは3文字以上30文字以下で入力してください。")
	}
	if len(in.LastName) < 1 || len(in.LastName) > 30 {
		return model.NewValidationError("lastNameは1文字以上30文字以下で入力してください。")
	}
	if !isValidEmail(in.Email) {
		return model.NewValidationError("emailの形式が正しくありません。")
	}
	if len(in.Password) < 8 {
		return model.NewValidationError("passwordは8文字以上で入力してください。")
	}
	if len(in.ConfirmPassword) < 8 {
		return model.NewValidationError("confirmPasswordは8文字以上で入力してください。")
	}
	if in.Password != in.ConfirmPassword {
		return model.NewValidationError("passwordとconfirmPasswordが一致しません。")
	}
	return nil
}

// validateLoginInput はログイン入力を検証する。
func validateLoginInput(email, password string) *model.APIError {
	if !isValidEmail(email) {
		return model.NewValidationError("emailの形式が正しくありません。")
	}
	if password == "" {
		return model.NewValidationError("passwordを入力してください。")
	}
	return nil
}

// isValidEmail はメールアドレスの構文を検証する。
// RFC 5322のアドレス単体（表示名なし）のみ許可する。
func isValidEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email
}
