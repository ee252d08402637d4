package config

import "testing"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "STATIC_DIR",
		"ARK_API_KEY", "ARK_ACCESS_KEY", "ARK_SECRET_KEY",
		"ARK_MODEL", "ARK_BASE_URL", "ARK_REGION",
		"ARK_TEMPERATURE", "ARK_MAX_TOKENS", "USE_MOCK",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
	if cfg.Server.StaticDir != "./static" {
		t.Fatalf("unexpected static dir: %s", cfg.Server.StaticDir)
	}
	if cfg.AI.Model != DefaultModel {
		t.Fatalf("unexpected model: %s", cfg.AI.Model)
	}
	if cfg.AI.Temperature != DefaultTemperature {
		t.Fatalf("unexpected temperature: %v", cfg.AI.Temperature)
	}
	if cfg.AI.MaxTokens != DefaultMaxTokens {
		t.Fatalf("unexpected max tokens: %d", cfg.AI.MaxTokens)
	}
	if cfg.AI.MockMode {
		t.Fatal("mock mode should default to off")
	}
	if cfg.AI.Enabled() {
		t.Fatal("AI should be disabled without a credential")
	}
}

func TestLoadPortForms(t *testing.T) {
	clearEnv(t)

	t.Setenv("PORT", "9090")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}

	t.Setenv("PORT", "127.0.0.1:7070")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:7070" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}

	t.Setenv("PORT", "bad port")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid PORT")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ARK_API_KEY", "secret")
	t.Setenv("ARK_MODEL", "custom-model")
	t.Setenv("ARK_TEMPERATURE", "0.7")
	t.Setenv("ARK_MAX_TOKENS", "100")
	t.Setenv("USE_MOCK", "true")
	t.Setenv("STATIC_DIR", "/srv/assets")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if !cfg.AI.Enabled() {
		t.Fatal("AI should be enabled with a credential")
	}
	if cfg.AI.Model != "custom-model" {
		t.Fatalf("unexpected model: %s", cfg.AI.Model)
	}
	if cfg.AI.Temperature != 0.7 {
		t.Fatalf("unexpected temperature: %v", cfg.AI.Temperature)
	}
	if cfg.AI.MaxTokens != 100 {
		t.Fatalf("unexpected max tokens: %d", cfg.AI.MaxTokens)
	}
	if !cfg.AI.MockMode {
		t.Fatal("mock mode should be on")
	}
	if cfg.Server.StaticDir != "/srv/assets" {
		t.Fatalf("unexpected static dir: %s", cfg.Server.StaticDir)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	clearEnv(t)

	t.Setenv("USE_MOCK", "maybe")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid USE_MOCK")
	}

	t.Setenv("USE_MOCK", "")
	t.Setenv("ARK_TEMPERATURE", "warm")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid ARK_TEMPERATURE")
	}
}

func TestEnabledWithAccessKeyPair(t *testing.T) {
	cfg := AIConfig{AccessKey: "ak", SecretKey: "sk"}
	if !cfg.Enabled() {
		t.Fatal("AK/SK pair should enable the AI config")
	}

	cfg = AIConfig{AccessKey: "ak"}
	if cfg.Enabled() {
		t.Fatal("access key alone must not enable the AI config")
	}
}
