// Package database 提供数据库连接和管理
package database

import (
	"context"
	"fmt"

	"github.com/shiftorg/shiftorg/pkg/logger"
)

// migrations 建表语句，按依赖顺序执行
// week_assignments 上的唯一索引保证 (员工, 班次, 周, 星期) 不重复分配
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS staff (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		qualifications TEXT[] NOT NULL DEFAULT '{}',
		max_shifts_per_week INTEGER NOT NULL DEFAULT 5 CHECK (max_shifts_per_week >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS shift_templates (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		days_of_week INTEGER[] NOT NULL DEFAULT '{}',
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		required_staff INTEGER NOT NULL DEFAULT 1 CHECK (required_staff >= 1),
		required_qualifications JSONB NOT NULL DEFAULT '{}',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS availability_rules (
		id UUID PRIMARY KEY,
		staff_id UUID NOT NULL REFERENCES staff(id) ON DELETE CASCADE,
		day_of_week INTEGER NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
		shift_template_id UUID REFERENCES shift_templates(id) ON DELETE CASCADE,
		is_available BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS preference_rules (
		id UUID PRIMARY KEY,
		staff_id UUID NOT NULL REFERENCES staff(id) ON DELETE CASCADE,
		day_of_week INTEGER NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
		shift_template_id UUID REFERENCES shift_templates(id) ON DELETE CASCADE,
		preference_score DOUBLE PRECISION NOT NULL DEFAULT 0
			CHECK (preference_score BETWEEN -1.0 AND 1.0)
	)`,
	`CREATE TABLE IF NOT EXISTS week_assignments (
		id UUID PRIMARY KEY,
		shift_template_id UUID NOT NULL REFERENCES shift_templates(id) ON DELETE CASCADE,
		staff_id UUID NOT NULL REFERENCES staff(id) ON DELETE CASCADE,
		week_start_date DATE NOT NULL,
		day_of_week INTEGER NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
		assigned_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_week_assignment
		ON week_assignments (staff_id, shift_template_id, week_start_date, day_of_week)`,
	`CREATE INDEX IF NOT EXISTS idx_week_assignments_week
		ON week_assignments (week_start_date)`,
	`CREATE INDEX IF NOT EXISTS idx_week_assignments_staff
		ON week_assignments (staff_id, week_start_date)`,
	`CREATE TABLE IF NOT EXISTS fairness_metrics (
		id UUID PRIMARY KEY,
		staff_id UUID NOT NULL REFERENCES staff(id) ON DELETE CASCADE,
		period_start TIMESTAMPTZ NOT NULL,
		period_end TIMESTAMPTZ NOT NULL,
		total_shifts INTEGER NOT NULL DEFAULT 0,
		preferred_shifts_count INTEGER NOT NULL DEFAULT 0,
		avoided_shifts_count INTEGER NOT NULL DEFAULT 0,
		preference_fulfillment_score DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
}

// Migrate 执行数据库迁移
func (db *DB) Migrate(ctx context.Context) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("迁移第 %d 步失败: %w", i+1, err)
		}
	}
	logger.Info().Int("steps", len(migrations)).Msg("数据库迁移完成")
	return nil
}
