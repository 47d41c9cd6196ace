package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8002},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
		Embedding: EmbeddingConfig{
			APIKey:  "test-key",
			BaseURL: "http://localhost:8001/v1/",
			Model:   "bge-m3",
		},
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_MissingEmbedding(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.BaseURL = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing embedding base_url")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if cfg.Embedding.Dimensions != 1024 {
		t.Errorf("Embedding.Dimensions = %d, want 1024", cfg.Embedding.Dimensions)
	}
	if cfg.Search.KeywordScoreScale != 0.1 {
		t.Errorf("Search.KeywordScoreScale = %f, want 0.1", cfg.Search.KeywordScoreScale)
	}
	if cfg.Search.HybridEpsilon != 0.001 {
		t.Errorf("Search.HybridEpsilon = %f, want 0.001", cfg.Search.HybridEpsilon)
	}
	if cfg.Search.RRFDisplayScale != 1000 {
		t.Errorf("Search.RRFDisplayScale = %f, want 1000", cfg.Search.RRFDisplayScale)
	}
	if cfg.Storage.KeyPrefix != "kb:chunk:" {
		t.Errorf("Storage.KeyPrefix = %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Storage.ChunkIndex != "kb:chunks:idx" {
		t.Errorf("Storage.ChunkIndex = %q", cfg.Storage.ChunkIndex)
	}
	if cfg.Search.RetrieveTimeoutSec != 30 {
		t.Errorf("Search.RetrieveTimeoutSec = %d, want 30", cfg.Search.RetrieveTimeoutSec)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("KB_TEST_PASSWORD", "secret")

	data := expandEnvVars([]byte("password: ${KB_TEST_PASSWORD}\nmodel: ${KB_UNSET:-bge-m3}\n"))
	got := string(data)

	want := "password: secret\nmodel: bge-m3\n"
	if got != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", got, want)
	}
}
