package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nao1215/medilabo/pkg/security"
)

// testPayload はテスト用のリクエスト/レスポンスペイロード。
type testPayload struct {
	// Name はテスト用の名前フィールド。
	Name string `json:"name"`
	// Value はテスト用の値フィールド。
	Value int `json:"value"`
}

// echoServer は受け取ったリクエストを記録し、固定のペイロードを返すテストサーバーを生成する。
func echoServer(t *testing.T, status int, received *http.Request, body *[]byte) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if received != nil {
			*received = *r.Clone(context.Background())
		}
		if body != nil {
			*body, _ = io.ReadAll(r.Body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(testPayload{Name: "ok", Value: 1})
	}))
	t.Cleanup(ts.Close)
	return ts
}

// TestNew はNew関数でクライアントが正しく生成されることを検証する。
func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("タイムアウトと転送用Transportが設定されること", func(t *testing.T) {
		t.Parallel()

		client := New("http://localhost:8081")
		if client.BaseURL() != "http://localhost:8081" {
			t.Errorf("baseURL = %q, want %q", client.BaseURL(), "http://localhost:8081")
		}
		if client.httpClient.Timeout != DefaultTimeout {
			t.Errorf("Timeout = %v, want %v", client.httpClient.Timeout, DefaultTimeout)
		}
		if _, ok := client.httpClient.Transport.(*ForwardingTransport); !ok {
			t.Errorf("Transport = %T, want *ForwardingTransport", client.httpClient.Transport)
		}
	})
}

// TestClient_JSON はJSONリクエストの送受信を検証する。
func TestClient_JSON(t *testing.T) {
	t.Parallel()

	t.Run("GETでレスポンスをデシリアライズできること", func(t *testing.T) {
		t.Parallel()

		var received http.Request
		ts := echoServer(t, http.StatusOK, &received, nil)

		var result testPayload
		if err := New(ts.URL).GetJSON(context.Background(), "/patients/1", &result); err != nil {
			t.Fatalf("GetJSON()でエラーが発生: %v", err)
		}
		if result.Name != "ok" || result.Value != 1 {
			t.Errorf("result = %+v", result)
		}
		if received.Method != http.MethodGet || received.URL.Path != "/patients/1" {
			t.Errorf("リクエスト = %s %s", received.Method, received.URL.Path)
		}
	})

	t.Run("POSTとPUTでJSONボディが送信されること", func(t *testing.T) {
		t.Parallel()

		for _, method := range []string{http.MethodPost, http.MethodPut} {
			var received http.Request
			var body []byte
			ts := echoServer(t, http.StatusOK, &received, &body)
			client := New(ts.URL)

			var err error
			payload := testPayload{Name: "note", Value: 42}
			if method == http.MethodPost {
				err = client.PostJSON(context.Background(), "/", payload, nil)
			} else {
				err = client.PutJSON(context.Background(), "/1", payload, nil)
			}
			if err != nil {
				t.Fatalf("%sでエラーが発生: %v", method, err)
			}
			if received.Method != method {
				t.Errorf("Method = %q, want %q", received.Method, method)
			}
			if got := received.Header.Get("Content-Type"); got != "application/json" {
				t.Errorf("Content-Type = %q", got)
			}
			var sent testPayload
			if err := json.Unmarshal(body, &sent); err != nil {
				t.Fatalf("リクエストボディのパースに失敗: %v", err)
			}
			if sent != payload {
				t.Errorf("送信ボディ = %+v, want %+v", sent, payload)
			}
		}
	})

	t.Run("2xx以外のステータスではStatusErrorが返ること", func(t *testing.T) {
		t.Parallel()

		ts := echoServer(t, http.StatusNotFound, nil, nil)
		err := New(ts.URL).GetJSON(context.Background(), "/patients/404", nil)

		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("err = %v, want *StatusError", err)
		}
		if statusErr.StatusCode != http.StatusNotFound {
			t.Errorf("StatusCode = %d, want %d", statusErr.StatusCode, http.StatusNotFound)
		}
	})

	t.Run("不正なJSONレスポンスでエラーが返ること", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer ts.Close()

		var result testPayload
		if err := New(ts.URL).GetJSON(context.Background(), "/", &result); err == nil {
			t.Error("エラーが返されなかった")
		}
	})

	t.Run("シリアライズできないボディでエラーが返ること", func(t *testing.T) {
		t.Parallel()

		if err := New("http://127.0.0.1:1").PostJSON(context.Background(), "/", make(chan int), nil); err == nil {
			t.Error("エラーが返されなかった")
		}
	})

	t.Run("キャンセルされたコンテキストでエラーが返ること", func(t *testing.T) {
		t.Parallel()

		ts := echoServer(t, http.StatusOK, nil, nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := New(ts.URL).GetJSON(ctx, "/", nil); err == nil {
			t.Error("エラーが返されなかった")
		}
	})
}

// TestForward は資格情報の転送を検証する。
func TestForward(t *testing.T) {
	t.Parallel()

	t.Run("受信したAuthorizationヘッダーがバイト単位で同一のまま転送されること", func(t *testing.T) {
		t.Parallel()

		ctx := security.WithAuthorization(context.Background(), "Bearer abc.def.ghi")
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://note/1", nil)
		if err != nil {
			t.Fatalf("リクエストの作成に失敗: %v", err)
		}
		Forward(req)

		if got := req.Header.Get("Authorization"); got != "Bearer abc.def.ghi" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer abc.def.ghi")
		}
	})

	t.Run("資格情報が無い場合はヘッダーを設定しないこと", func(t *testing.T) {
		t.Parallel()

		req, err := http.NewRequest(http.MethodGet, "http://note/1", nil)
		if err != nil {
			t.Fatalf("リクエストの作成に失敗: %v", err)
		}
		Forward(req)

		if _, ok := req.Header["Authorization"]; ok {
			t.Error("Authorizationヘッダーが設定された")
		}
	})

	t.Run("Clientの呼び出しで資格情報が転送されること", func(t *testing.T) {
		t.Parallel()

		var received http.Request
		ts := echoServer(t, http.StatusOK, &received, nil)
		ctx := security.WithAuthorization(context.Background(), "Bearer abc.def.ghi")

		if err := New(ts.URL).GetJSON(ctx, "/patients/1", nil); err != nil {
			t.Fatalf("GetJSON()でエラーが発生: %v", err)
		}
		if got := received.Header.Get("Authorization"); got != "Bearer abc.def.ghi" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer abc.def.ghi")
		}
	})

	t.Run("資格情報が無い場合は匿名で呼び出されること", func(t *testing.T) {
		t.Parallel()

		var received http.Request
		ts := echoServer(t, http.StatusOK, &received, nil)

		if err := New(ts.URL).GetJSON(context.Background(), "/patients/1", nil); err != nil {
			t.Fatalf("GetJSON()でエラーが発生: %v", err)
		}
		if got := received.Header.Get("Authorization"); got != "" {
			t.Errorf("Authorization = %q, want empty", got)
		}
	})

	t.Run("RoundTripが元のリクエストを変更しないこと", func(t *testing.T) {
		t.Parallel()

		var seen string
		transport := &ForwardingTransport{Base: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			seen = r.Header.Get("Authorization")
			return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: r}, nil
		})}

		ctx := security.WithAuthorization(context.Background(), "Bearer abc.def.ghi")
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://evaluation/1", nil)
		if err != nil {
			t.Fatalf("リクエストの作成に失敗: %v", err)
		}
		if _, err := transport.RoundTrip(req); err != nil {
			t.Fatalf("RoundTrip()でエラーが発生: %v", err)
		}
		if seen != "Bearer abc.def.ghi" {
			t.Errorf("送信時のAuthorization = %q", seen)
		}
		if got := req.Header.Get("Authorization"); got != "" {
			t.Errorf("元のリクエストが変更された: Authorization = %q", got)
		}
	})
}

// roundTripFunc は関数をhttp.RoundTripperとして扱うアダプタ。
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}
