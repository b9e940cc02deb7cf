// Package httpclient はサービス間のHTTP通信を行うクライアントを提供する。
//
// 受信したリクエストのAuthorizationヘッダーを送信リクエストにそのまま付け直す
// RoundTripperを持ち、呼び出し先のサービスが同じ呼び出し元を認識できるようにする。
package httpclient
