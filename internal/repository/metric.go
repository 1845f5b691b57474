// Package repository 提供数据访问层
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shiftorg/shiftorg/pkg/model"
)

// MetricRepository 公平性指标快照仓储
// 指标默认按需计算，此仓储用于显式保存快照
type MetricRepository struct {
	db DB
}

// NewMetricRepository 创建指标仓储
func NewMetricRepository(db DB) *MetricRepository {
	return &MetricRepository{db: db}
}

// Save 保存指标快照
func (r *MetricRepository) Save(ctx context.Context, metric *model.FairnessMetric) error {
	if metric.ID == uuid.Nil {
		metric.ID = uuid.New()
	}

	query := `
		INSERT INTO fairness_metrics (
			id, staff_id, period_start, period_end,
			total_shifts, preferred_shifts_count, avoided_shifts_count,
			preference_fulfillment_score
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		metric.ID, metric.StaffID, metric.PeriodStart, metric.PeriodEnd,
		metric.TotalShifts, metric.PreferredShiftsCount, metric.AvoidedShiftsCount,
		metric.PreferenceFulfillmentScore,
	)
	if err != nil {
		return fmt.Errorf("保存公平性指标失败: %w", err)
	}

	return nil
}

// ListByStaff 查询某员工的历史指标快照，按周期结束时间降序
func (r *MetricRepository) ListByStaff(ctx context.Context, staffID uuid.UUID) ([]*model.FairnessMetric, error) {
	query := `
		SELECT id, staff_id, period_start, period_end,
			total_shifts, preferred_shifts_count, avoided_shifts_count,
			preference_fulfillment_score
		FROM fairness_metrics
		WHERE staff_id = $1
		ORDER BY period_end DESC
	`

	rows, err := r.db.QueryContext(ctx, query, staffID)
	if err != nil {
		return nil, fmt.Errorf("查询公平性指标失败: %w", err)
	}
	defer rows.Close()

	var result []*model.FairnessMetric
	for rows.Next() {
		var m model.FairnessMetric
		err := rows.Scan(
			&m.ID, &m.StaffID, &m.PeriodStart, &m.PeriodEnd,
			&m.TotalShifts, &m.PreferredShiftsCount, &m.AvoidedShiftsCount,
			&m.PreferenceFulfillmentScore,
		)
		if err != nil {
			return nil, fmt.Errorf("扫描公平性指标失败: %w", err)
		}
		result = append(result, &m)
	}
	return result, rows.Err()
}
