// Package security は全サービスで共有するステートレスな認証・認可の仕組みを提供する。
//
// 署名付きトークンの発行と検証、ルートごとのロール認可マトリクス、
// リクエストスコープのPrincipal管理を含む。各サービスはこのパッケージを
// 自身のルールテーブルとともにインポートし、検証は常にプロセス内で完結する。
package security
