package config

import "testing"

func TestSeedPasswordHasNoDefault(t *testing.T) {
	t.Setenv("SEED_ADMIN_PASSWORD", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Seed.AdminPassword != "" {
		t.Fatalf("expected empty seed password when unset, got %q", cfg.Seed.AdminPassword)
	}
}

func TestSeedPasswordFromEnvironment(t *testing.T) {
	t.Setenv("SEED_ADMIN_PASSWORD", "s3cret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Seed.AdminPassword != "s3cret" {
		t.Fatalf("expected seed password from environment, got %q", cfg.Seed.AdminPassword)
	}
}
