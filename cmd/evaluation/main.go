// 評価サービスのエントリポイント。
// 患者の属性とノートから糖尿病リスクのレベルを判定する。
package main

import (
	"log"

	"github.com/nao1215/medilabo/internal/evaluation"
)

func main() {
	cfg, err := evaluation.LoadConfig()
	if err != nil {
		log.Fatalf("評価サービスの設定読み込みに失敗: %v", err)
	}

	server, err := evaluation.NewServer(cfg)
	if err != nil {
		log.Fatalf("評価サーバーの初期化に失敗: %v", err)
	}

	log.Printf("評価サービスを起動します: :%s", cfg.Port)
	if err := server.Run(); err != nil {
		log.Fatalf("評価サービスの起動に失敗: %v", err)
	}
}
