// Package gateway はAPI Gatewayサービスの内部実装を提供する。
//
// 外部からアクセス可能な唯一の入口として、トークンの検証とルート認可を行い、
// 許可されたリクエストを/api/{users,notes,evaluation}とフロントエンドへ転送する。
// 転送時はプレフィックスを取り除き、Authorizationヘッダーをそのまま引き継ぐ。
package gateway
