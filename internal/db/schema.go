package db

// schemaStatements are applied in order by EnsureSchema. Each is idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS saved_applications (
		id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		job_description TEXT NOT NULL DEFAULT '',
		company_name    TEXT,
		skills          TEXT[] NOT NULL DEFAULT '{}',
		resume_data     JSONB NOT NULL DEFAULT '{}'::jsonb,
		chat_history    JSONB NOT NULL DEFAULT '[]'::jsonb,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_saved_applications_created_at
		ON saved_applications (created_at DESC)`,
}
