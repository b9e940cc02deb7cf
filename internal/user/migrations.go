package user

import "embed"

// migrationsFS はユーザーサービスのマイグレーションファイル。
//
//go:embed migrations/*.sql
var migrationsFS embed.FS
