// ユーザーサービスのエントリポイント。
// ログインによるトークン発行、医師のプロフィールと担当患者、管理者によるユーザー管理を担当する。
package main

import (
	"log"

	"github.com/nao1215/medilabo/internal/user"
)

func main() {
	cfg, err := user.LoadConfig()
	if err != nil {
		log.Fatalf("ユーザーサービスの設定読み込みに失敗: %v", err)
	}

	server, err := user.NewServer(cfg)
	if err != nil {
		log.Fatalf("ユーザーサーバーの初期化に失敗: %v", err)
	}
	defer server.Close()

	log.Printf("ユーザーサービスを起動します: :%s", cfg.Port)
	if err := server.Run(); err != nil {
		log.Fatalf("ユーザーサービスの起動に失敗: %v", err)
	}
}
