// Package user はユーザーサービスの内部実装を提供する。
//
// ログインによるトークン発行、医師（USER）のプロフィールと担当患者の管理、
// 管理者（ADMIN）によるユーザー管理を担当する。トークンの検証と認可は
// 他のサービスと同じpkg/securityの認可表で行い、加えてトークンのユーザーが
// 現在も存在することを確認する。
package user
