package db

import (
	"database/sql"
)

func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS users (
    id                      SERIAL PRIMARY KEY,
    name                    TEXT NOT NULL,
    username                TEXT NOT NULL UNIQUE,
    email                   TEXT NOT NULL UNIQUE,
    password_hash           TEXT NOT NULL,
    bio                     TEXT NOT NULL DEFAULT '',
    profile_photo_url       TEXT NOT NULL DEFAULT '',
    profile_photo_public_id TEXT NOT NULL DEFAULT '',
    blog_published          BIGINT NOT NULL DEFAULT 0,
    total_visits            BIGINT NOT NULL DEFAULT 0,
    total_reactions         BIGINT NOT NULL DEFAULT 0,
    created_at              TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at              TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS blogs (
    id               SERIAL PRIMARY KEY,
    owner_id         INTEGER NOT NULL REFERENCES users(id),
    title            TEXT NOT NULL,
    content          TEXT NOT NULL,
    banner_url       TEXT NOT NULL DEFAULT '',
    banner_public_id TEXT NOT NULL DEFAULT '',
    reading_time     INT NOT NULL DEFAULT 0,
    reaction         BIGINT NOT NULL DEFAULT 0,
    total_bookmark   BIGINT NOT NULL DEFAULT 0,
    total_visit      BIGINT NOT NULL DEFAULT 0,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`); err != nil {
		return err
	}

	// メンバーシップ集合: 一人のユーザーは一つのブログに対して高々一行
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS reacted_blogs (
    user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    blog_id    INTEGER NOT NULL REFERENCES blogs(id) ON DELETE CASCADE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (user_id, blog_id)
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS reading_list (
    user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    blog_id    INTEGER NOT NULL REFERENCES blogs(id) ON DELETE CASCADE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (user_id, blog_id)
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS sessions (
    id         TEXT PRIMARY KEY,
    user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    name       TEXT NOT NULL,
    username   TEXT NOT NULL,
    photo_url  TEXT NOT NULL DEFAULT '',
    expires_at TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`); err != nil {
		return err
	}

	// 片側だけ適用された paired write の痕跡。監査ジョブが解決する
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS counter_repairs (
    id          SERIAL PRIMARY KEY,
    op          TEXT NOT NULL,
    blog_id     INTEGER NOT NULL DEFAULT 0,
    user_id     INTEGER NOT NULL DEFAULT 0,
    detail      TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    resolved_at TIMESTAMPTZ
)`); err != nil {
		return err
	}

	// パフォーマンス最適化: インデックス追加
	indexes := []string{
		// ホームフィードとプロフィールの新着順リスト用
		`CREATE INDEX IF NOT EXISTS idx_blogs_created_at ON blogs(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_blogs_owner_id ON blogs(owner_id)`,
		// リーディングリストの保存順リスト用
		`CREATE INDEX IF NOT EXISTS idx_reading_list_user ON reading_list(user_id, created_at DESC)`,
		// セッション解決と期限切れ掃除用
		`CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at)`,
		// 未解決の修復レコード取得用
		`CREATE INDEX IF NOT EXISTS idx_counter_repairs_unresolved ON counter_repairs(created_at) WHERE resolved_at IS NULL`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	return nil
}

// MigrateDown rolls back the database schema.
// Use with caution: this will delete all data in the affected tables.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS counter_repairs`,
		`DROP TABLE IF EXISTS sessions`,
		`DROP TABLE IF EXISTS reading_list`,
		`DROP TABLE IF EXISTS reacted_blogs`,
		`DROP TABLE IF EXISTS blogs`,
		`DROP TABLE IF EXISTS users`,
	}
	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
