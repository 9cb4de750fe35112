// Package config 提供配置加载单元测试
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Polling.IntervalSeconds != 2 {
		t.Errorf("Polling.IntervalSeconds = %d, want 2", cfg.Polling.IntervalSeconds)
	}
	if cfg.Polling.MaxAttempts != 15 {
		t.Errorf("Polling.MaxAttempts = %d, want 15", cfg.Polling.MaxAttempts)
	}
	if cfg.AI.Model != "gemini-2.0-flash" {
		t.Errorf("AI.Model = %q", cfg.AI.Model)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9999
polling:
  maxAttempts: 3
backend:
  baseUrl: http://backend.internal/api
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Polling.MaxAttempts != 3 {
		t.Errorf("Polling.MaxAttempts = %d, want 3", cfg.Polling.MaxAttempts)
	}
	if cfg.Backend.BaseURL != "http://backend.internal/api" {
		t.Errorf("Backend.BaseURL = %q", cfg.Backend.BaseURL)
	}
	// 未覆盖的字段保留默认值
	if cfg.Polling.IntervalSeconds != 2 {
		t.Errorf("Polling.IntervalSeconds = %d, want default 2", cfg.Polling.IntervalSeconds)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/does/not/exist.yaml"); err == nil {
		t.Fatal("Load() with missing file should fail")
	}
}

func TestGetDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: 5432, User: "silo", Password: "pw", DBName: "silo", SSLMode: "disable",
	}
	want := "host=db port=5432 user=silo password=pw dbname=silo sslmode=disable"
	if got := cfg.GetDSN(); got != want {
		t.Errorf("GetDSN() = %q, want %q", got, want)
	}
}

func TestGetAddr(t *testing.T) {
	server := ServerConfig{Host: "0.0.0.0", Port: 8080}
	if got := server.GetAddr(); got != "0.0.0.0:8080" {
		t.Errorf("ServerConfig.GetAddr() = %q", got)
	}

	redis := RedisConfig{Host: "localhost", Port: 6379}
	if got := redis.GetAddr(); got != "localhost:6379" {
		t.Errorf("RedisConfig.GetAddr() = %q", got)
	}
}
