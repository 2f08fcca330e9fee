package respond

import (
	"regexp"
)

var (
	// 接続文字列内のパスワード（postgres:// や cloudinary:// の DSN）
	dsnPasswordPattern = regexp.MustCompile(`://([^:/]+):([^@]+)@`)

	// 画像ホストの署名付きリクエストに含まれる秘密情報
	apiSecretPattern = regexp.MustCompile(`(api_secret|api_key|signature)=[^&\s]+`)

	// セッショントークン（UUID 形式）
	sessionTokenPattern = regexp.MustCompile(`session_id=[a-fA-F0-9-]{36}`)
)

// SanitizeError は機密情報をマスクしたエラーメッセージを返す
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	// DB・画像ホストのパスワードのマスク
	msg = dsnPasswordPattern.ReplaceAllString(msg, "://$1:****@")

	// 署名パラメータのマスク
	msg = apiSecretPattern.ReplaceAllString(msg, "$1=****")

	// セッショントークンのマスク
	msg = sessionTokenPattern.ReplaceAllString(msg, "session_id=****")

	return msg
}
