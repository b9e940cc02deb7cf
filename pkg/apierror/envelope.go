package apierror

import (
	"net/http"
	"strings"
)

// TimestampLayout はエンベロープのtimestampフィールドの書式。
const TimestampLayout = "2006-01-02 15:04:05"

// Envelope は全サービスで共通のエラーレスポンス本文。
type Envelope struct {
	// Status はHTTPステータスコード。
	Status int `json:"status"`
	// Error はHTTPステータス名（例: "UNAUTHORIZED"）。
	Error string `json:"error"`
	// Message は利用者向けのメッセージ。
	Message string `json:"message"`
	// FieldErrors は入力検証エラーのフィールド別メッセージ。該当しない場合はnull。
	FieldErrors map[string]string `json:"fieldErrors"`
	// Path はリクエストパス。
	Path string `json:"path"`
	// Timestamp はエラー発生時刻（ローカル時刻）。
	Timestamp string `json:"timestamp"`
}

// StatusName はHTTPステータスコードの定数名を返す。
// 例えば404は "NOT_FOUND" になる。
func StatusName(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "UNKNOWN"
	}
	text = strings.ReplaceAll(text, "-", "_")
	return strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
}
