// ShiftOrg 演示数据填充工具
// 写入三名员工、两个全周班次模板及示例可用性/偏好规则

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shiftorg/shiftorg/internal/config"
	"github.com/shiftorg/shiftorg/internal/database"
	"github.com/shiftorg/shiftorg/internal/repository"
	"github.com/shiftorg/shiftorg/pkg/logger"
	"github.com/shiftorg/shiftorg/pkg/model"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{Level: cfg.App.LogLevel, Format: "console"})

	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Error().Err(err).Msg("数据库连接失败")
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := db.Migrate(ctx); err != nil {
		logger.Error().Err(err).Msg("数据库迁移失败")
		os.Exit(1)
	}

	if err := seed(ctx, db); err != nil {
		logger.Error().Err(err).Msg("数据填充失败")
		os.Exit(1)
	}

	logger.Info().Msg("演示数据填充完成")
}

// seed 写入演示数据
func seed(ctx context.Context, db repository.DB) error {
	staffRepo := repository.NewStaffRepository(db)
	ruleRepo := repository.NewRuleRepository(db)
	templateRepo := repository.NewTemplateRepository(db)

	// 员工
	fredo := &model.Staff{Name: "Fredo", Qualifications: []string{}, MaxShiftsPerWeek: 5}
	emp2 := &model.Staff{Name: "Employee 2", Qualifications: []string{}, MaxShiftsPerWeek: 5}
	emp3 := &model.Staff{Name: "Employee 3", Qualifications: []string{}, MaxShiftsPerWeek: 5}
	for _, s := range []*model.Staff{fredo, emp2, emp3} {
		if err := staffRepo.Create(ctx, s); err != nil {
			return fmt.Errorf("创建员工 %s 失败: %w", s.Name, err)
		}
		logger.Info().Str("name", s.Name).Str("id", s.ID.String()).Msg("创建员工")
	}

	// 班次模板：早班与午班，覆盖全周，各需 2 人
	allWeek := []int{0, 1, 2, 3, 4, 5, 6}
	morning := &model.ShiftTemplate{
		Name:                   "Morning",
		DaysOfWeek:             allWeek,
		StartTime:              "09:00",
		EndTime:                "14:00",
		RequiredStaff:          2,
		RequiredQualifications: map[string]int{},
		IsActive:               true,
	}
	afternoon := &model.ShiftTemplate{
		Name:                   "Afternoon",
		DaysOfWeek:             allWeek,
		StartTime:              "14:00",
		EndTime:                "19:00",
		RequiredStaff:          2,
		RequiredQualifications: map[string]int{},
		IsActive:               true,
	}
	for _, t := range []*model.ShiftTemplate{morning, afternoon} {
		if err := templateRepo.Create(ctx, t); err != nil {
			return fmt.Errorf("创建班次模板 %s 失败: %w", t.Name, err)
		}
		logger.Info().Str("name", t.Name).Str("id", t.ID.String()).Msg("创建班次模板")
	}

	// 可用性：Fredo 周三/周六不可用，Employee 2 周五/周日不可用
	unavailable := []struct {
		staff uuid.UUID
		days  []int
	}{
		{fredo.ID, []int{2, 5}},
		{emp2.ID, []int{4, 6}},
	}
	for _, u := range unavailable {
		for _, day := range u.days {
			for _, tmpl := range []*model.ShiftTemplate{morning, afternoon} {
				rule := &model.AvailabilityRule{
					StaffID:    u.staff,
					DayOfWeek:  day,
					TemplateID: &tmpl.ID,
					Available:  false,
				}
				if err := ruleRepo.SetAvailability(ctx, rule); err != nil {
					return fmt.Errorf("写入可用性规则失败: %w", err)
				}
			}
		}
	}

	// 偏好：Fredo 偏好周一午班和周日早班，回避周四午班
	preferences := []*model.PreferenceRule{
		{StaffID: fredo.ID, DayOfWeek: 0, TemplateID: &afternoon.ID, Score: 0.5},
		{StaffID: fredo.ID, DayOfWeek: 3, TemplateID: &afternoon.ID, Score: -0.5},
		{StaffID: fredo.ID, DayOfWeek: 6, TemplateID: &morning.ID, Score: 0.5},
	}
	for _, p := range preferences {
		if err := ruleRepo.SetPreference(ctx, p); err != nil {
			return fmt.Errorf("写入偏好规则失败: %w", err)
		}
	}

	logger.Info().
		Int("staff", 3).
		Int("templates", 2).
		Int("slots_per_week", 28).
		Msg("演示数据概览")
	return nil
}
