package config

import (
	"errors"
	"testing"
)

// validConfig returns a configuration that passes Validate.
func validConfig() *Config {
	return &Config{
		Provider:        ProviderGemini,
		ModelName:       "gemini-2.5-flash",
		EmbedderModel:   DefaultEmbedderModel,
		PostgresHost:    "localhost",
		PostgresPort:    5432,
		PostgresDBName:  "portfolio",
		PostgresSSLMode: "disable",
		ChunkSize:       1000,
		ChunkOverlap:    200,
		TopK:            4,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "valid config", mutate: func(c *Config) {}, wantErr: nil},
		{name: "nil-ish provider", mutate: func(c *Config) { c.Provider = "anthropic" }, wantErr: ErrInvalidProvider},
		{name: "blank model name", mutate: func(c *Config) { c.ModelName = "  " }, wantErr: ErrInvalidModelName},
		{name: "blank embedder model", mutate: func(c *Config) { c.EmbedderModel = "" }, wantErr: ErrInvalidEmbedderModel},
		{name: "empty postgres host", mutate: func(c *Config) { c.PostgresHost = "" }, wantErr: ErrInvalidPostgresHost},
		{name: "port too low", mutate: func(c *Config) { c.PostgresPort = 0 }, wantErr: ErrInvalidPostgresPort},
		{name: "port too high", mutate: func(c *Config) { c.PostgresPort = 70000 }, wantErr: ErrInvalidPostgresPort},
		{name: "empty db name", mutate: func(c *Config) { c.PostgresDBName = "" }, wantErr: ErrInvalidPostgresDBName},
		{name: "bad ssl mode", mutate: func(c *Config) { c.PostgresSSLMode = "sometimes" }, wantErr: ErrInvalidPostgresSSLMode},
		{name: "zero chunk size", mutate: func(c *Config) { c.ChunkSize = 0 }, wantErr: ErrInvalidChunking},
		{name: "overlap not below size", mutate: func(c *Config) { c.ChunkOverlap = 1000 }, wantErr: ErrInvalidChunking},
		{name: "negative overlap", mutate: func(c *Config) { c.ChunkOverlap = -1 }, wantErr: ErrInvalidChunking},
		{name: "zero top k", mutate: func(c *Config) { c.TopK = 0 }, wantErr: ErrInvalidChunking},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateNil(t *testing.T) {
	var c *Config
	if err := c.Validate(); !errors.Is(err, ErrConfigNil) {
		t.Fatalf("Validate() on nil = %v, want ErrConfigNil", err)
	}
}

func TestValidateServe(t *testing.T) {
	cfg := validConfig()
	if err := cfg.ValidateServe(); !errors.Is(err, ErrMissingSenderEmail) {
		t.Fatalf("ValidateServe() without sender = %v, want ErrMissingSenderEmail", err)
	}

	cfg.VerifiedSender = "noreply@olukareem.me"
	if err := cfg.ValidateServe(); !errors.Is(err, ErrMissingOwnerEmail) {
		t.Fatalf("ValidateServe() without owner = %v, want ErrMissingOwnerEmail", err)
	}

	cfg.OwnerEmail = "olukareem@pm.me"
	if err := cfg.ValidateServe(); err != nil {
		t.Fatalf("ValidateServe() unexpected error: %v", err)
	}
}
