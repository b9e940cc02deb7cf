// ノートサービスのエントリポイント。
// 医師が患者ごとに記録する所見を管理する。
package main

import (
	"log"

	"github.com/nao1215/medilabo/internal/note"
)

func main() {
	cfg, err := note.LoadConfig()
	if err != nil {
		log.Fatalf("ノートサービスの設定読み込みに失敗: %v", err)
	}

	server, err := note.NewServer(cfg)
	if err != nil {
		log.Fatalf("ノートサーバーの初期化に失敗: %v", err)
	}
	defer server.Close()

	log.Printf("ノートサービスを起動します: :%s", cfg.Port)
	if err := server.Run(); err != nil {
		log.Fatalf("ノートサービスの起動に失敗: %v", err)
	}
}
