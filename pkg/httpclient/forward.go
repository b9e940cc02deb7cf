package httpclient

import (
	"net/http"

	"github.com/nao1215/medilabo/pkg/security"
)

// Forward は送信リクエストのコンテキストに保持されたAuthorizationヘッダーの値を
// そのまま送信リクエストに設定する。値が無い場合は何もしない。
// トークンの再発行や加工は行わない。
func Forward(outbound *http.Request) {
	if header := security.AuthorizationFromContext(outbound.Context()); header != "" {
		outbound.Header.Set("Authorization", header)
	}
}

// ForwardingTransport は送信するすべてのリクエストにForwardを適用するRoundTripper。
type ForwardingTransport struct {
	// Base は実際の送信に使用するRoundTripper。nilの場合はhttp.DefaultTransportを使用する。
	Base http.RoundTripper
}

// RoundTrip はhttp.RoundTripperを実装する。
// RoundTripperは元のリクエストを変更してはならないため、複製に対してヘッダーを設定する。
func (t *ForwardingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if security.AuthorizationFromContext(req.Context()) != "" {
		req = req.Clone(req.Context())
		Forward(req)
	}
	return t.base().RoundTrip(req)
}

func (t *ForwardingTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}
