package apierror

import (
	"fmt"
	"net/http"
)

// Error はハンドラーが返す業務エラー。
// Responderによってステータスとメッセージがそのままエンベロープに変換される。
type Error struct {
	// Status はHTTPステータスコード。
	Status int
	// Message は利用者向けのメッセージ。
	Message string
	// FieldErrors はフィールド別のエラーメッセージ。
	FieldErrors map[string]string
	// Cause はログ用の原因エラー。レスポンスには含めない。
	Cause error
}

// Error はerrorインターフェースを実装する。
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%d %s: %v", e.Status, e.Message, e.Cause)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

// Unwrap は原因エラーを返す。
func (e *Error) Unwrap() error {
	return e.Cause
}

// New は指定したステータスとメッセージの業務エラーを生成する。
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Wrap は原因エラーを保持した業務エラーを生成する。
func Wrap(status int, message string, cause error) *Error {
	return &Error{Status: status, Message: message, Cause: cause}
}

// NotFound は404の業務エラーを生成する。
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// Forbidden は403の業務エラーを生成する。
func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

// BadRequest は400の業務エラーを生成する。
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Unauthorized は401の業務エラーを生成する。
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}
