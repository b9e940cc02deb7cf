package apierror

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Responder はエラーをエンベロープ形式でレスポンスする。
// 1プロセスで1つ生成し、全ハンドラーで共有する。
type Responder struct {
	// service はログ出力用のサービス名。
	service string
	// messages はエラー種別ごとのメッセージ。
	messages Messages
	// now は現在時刻を返す関数。
	now func() time.Time
}

// ResponderOption はResponderの生成オプション。
type ResponderOption func(*Responder)

// WithClock は現在時刻の取得関数を差し替える。
func WithClock(now func() time.Time) ResponderOption {
	return func(r *Responder) {
		r.now = now
	}
}

// NewResponder は新しいResponderを生成する。
func NewResponder(service string, messages Messages, opts ...ResponderOption) *Responder {
	r := &Responder{
		service:  service,
		messages: messages,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Messages はResponderが使用するメッセージを返す。
func (r *Responder) Messages() Messages {
	return r.messages
}

// Unauthenticated は401エラーを返す。
func (r *Responder) Unauthenticated(c *gin.Context) {
	log.Printf("[Error] %s: 未認証のアクセス %s %s", r.service, c.Request.Method, c.Request.URL.Path)
	r.render(c, http.StatusUnauthorized, r.messages.Unauthenticated, nil)
}

// Forbidden は403エラーを返す。
func (r *Responder) Forbidden(c *gin.Context) {
	log.Printf("[Error] %s: 権限のないアクセス %s %s", r.service, c.Request.Method, c.Request.URL.Path)
	r.render(c, http.StatusForbidden, r.messages.Forbidden, nil)
}

// RouteNotFound は404エラーを返す。router.NoRouteに登録して使用する。
func (r *Responder) RouteNotFound(c *gin.Context) {
	log.Printf("[Error] %s: 存在しないルート %s %s", r.service, c.Request.Method, c.Request.URL.Path)
	r.render(c, http.StatusNotFound, r.messages.RouteNotFound, nil)
}

// Internal は500エラーを返す。errの内容はログにのみ出力する。
func (r *Responder) Internal(c *gin.Context, err error) {
	log.Printf("[Error] %s: 内部エラー %s %s: %v", r.service, c.Request.Method, c.Request.URL.Path, err)
	r.render(c, http.StatusInternalServerError, r.messages.Internal, nil)
}

// BadGateway は502エラーを返す。依存サービスへの接続失敗時に使用する。
func (r *Responder) BadGateway(c *gin.Context, err error) {
	log.Printf("[Error] %s: 依存サービスエラー %s %s: %v", r.service, c.Request.Method, c.Request.URL.Path, err)
	r.render(c, http.StatusBadGateway, r.messages.BadGateway, nil)
}

// Validation は400エラーを返す。入力検証エラーの場合はfieldErrorsを設定する。
func (r *Responder) Validation(c *gin.Context, err error) {
	log.Printf("[Error] %s: 入力エラー %s %s: %v", r.service, c.Request.Method, c.Request.URL.Path, err)
	r.render(c, http.StatusBadRequest, r.messages.Validation, FieldErrors(err))
}

// Error はハンドラーが返したエラーをレスポンスする。
// *Error の場合はそのステータスとメッセージを使い、それ以外は500として扱う。
func (r *Responder) Error(c *gin.Context, err error) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		r.Internal(c, err)
		return
	}
	if apiErr.Status >= http.StatusInternalServerError {
		log.Printf("[Error] %s: %s %s: %v", r.service, c.Request.Method, c.Request.URL.Path, err)
	}
	r.render(c, apiErr.Status, apiErr.Message, apiErr.FieldErrors)
}

func (r *Responder) render(c *gin.Context, status int, message string, fields map[string]string) {
	if len(fields) == 0 {
		fields = nil
	}
	c.AbortWithStatusJSON(status, Envelope{
		Status:      status,
		Error:       StatusName(status),
		Message:     message,
		FieldErrors: fields,
		Path:        c.Request.URL.Path,
		Timestamp:   r.now().Format(TimestampLayout),
	})
}
