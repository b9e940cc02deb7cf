package note

import "embed"

// migrationsFS はノートサービスのマイグレーションファイル。
//
//go:embed migrations/*.sql
var migrationsFS embed.FS
