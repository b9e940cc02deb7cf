// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// トークン検証とルート認可を行うリクエストフィルター、パニックリカバリ、
// CORS設定など、全サービスで共通して使用するミドルウェアを含む。
package middleware
