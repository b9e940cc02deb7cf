// Package apierror は全サービス共通のエラーレスポンス形式を提供する。
//
// 未認証、権限不足、ルート不在、内部エラー、入力検証エラーを
// 同じJSONエンベロープで返し、内部のエラー内容は呼び出し元に公開しない。
package apierror
