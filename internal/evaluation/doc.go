// Package evaluation は評価サービスの内部実装を提供する。
//
// 患者の属性（性別と年齢）と医師のノートに含まれるトリガー語の数から、
// 糖尿病リスクのレベルを判定する。患者はユーザーサービス、ノートはノートサービスから
// 呼び出し元の資格情報を転送して並行に取得する。
package evaluation
