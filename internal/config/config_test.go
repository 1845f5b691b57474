package config

import (
	"testing"
	"time"
)

// TestLoad_Defaults 测试默认配置
func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	if cfg.App.Name != "shiftorg" {
		t.Errorf("默认应用名错误: %s", cfg.App.Name)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("默认数据库端口错误: %d", cfg.Database.Port)
	}
	if cfg.Scheduler.LoadPenalty != 0.1 {
		t.Errorf("默认负载惩罚错误: %f", cfg.Scheduler.LoadPenalty)
	}
	if cfg.Scheduler.DefaultTimeout != 30*time.Second {
		t.Errorf("默认排班超时错误: %v", cfg.Scheduler.DefaultTimeout)
	}
}

// TestLoad_EnvOverride 测试环境变量覆盖默认值
func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("DB_NAME", "shiftorg_test")
	t.Setenv("SCHEDULER_LOAD_PENALTY", "0.25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	if cfg.App.Port != 9000 {
		t.Errorf("端口未被覆盖: %d", cfg.App.Port)
	}
	if cfg.Database.Name != "shiftorg_test" {
		t.Errorf("数据库名未被覆盖: %s", cfg.Database.Name)
	}
	if cfg.Scheduler.LoadPenalty != 0.25 {
		t.Errorf("负载惩罚未被覆盖: %f", cfg.Scheduler.LoadPenalty)
	}
}

// TestDatabaseConfig_DSN 测试连接字符串拼装
func TestDatabaseConfig_DSN(t *testing.T) {
	db := DatabaseConfig{
		Host: "db.local", Port: 5433, Name: "shiftorg",
		User: "app", Password: "secret", SSLMode: "require",
	}
	want := "host=db.local port=5433 user=app password=secret dbname=shiftorg sslmode=require"
	if got := db.DSN(); got != want {
		t.Errorf("DSN 错误:\n得到 %s\n期望 %s", got, want)
	}
}
