package config

import (
	"os"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv(EnvData, "")
	t.Setenv(EnvFormat, "")
	t.Setenv(EnvLogLevel, "")
	c := FromEnv()
	if c.Data != "data.json" || c.Format != "html" || c.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv(EnvData, "pubs.yaml")
	t.Setenv(EnvFormat, "text")
	t.Setenv(EnvLogLevel, "debug")
	c := FromEnv()
	if c.Data != "pubs.yaml" || c.Format != "text" || c.LogLevel != "debug" {
		t.Fatalf("env not applied: %+v", c)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	old, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(old) })
	_ = os.Chdir(dir)
	if err := os.WriteFile(".env", []byte("FOLIO_FORMAT=markdown\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvFormat, "")
	os.Unsetenv(EnvFormat)
	t.Setenv(EnvData, "explicit.json")
	c := Load()
	if c.Format != "markdown" {
		t.Fatalf(".env not loaded: %+v", c)
	}
	if c.Data != "explicit.json" {
		t.Fatalf("environment should win over .env: %+v", c)
	}
}
