// Package note はノートサービスの内部実装を提供する。
//
// 医師が患者ごとに記録する所見（ノート）を管理する。患者の存在と担当関係は
// 呼び出し元の資格情報をそのまま転送してユーザーサービスに問い合わせて確認する。
package note
