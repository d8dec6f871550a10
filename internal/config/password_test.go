package config

import "testing"

func TestNewPasswordConfig_Defaults(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("PASSWORD_PEPPER", "")

	cfg, err := NewPasswordConfig()
	if err != nil {
		t.Fatalf("NewPasswordConfig failed: %v", err)
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
}

func TestNewPasswordConfig_CostRange(t *testing.T) {
	for _, cost := range []string{"9", "15", "abc"} {
		t.Setenv("BCRYPT_COST", cost)
		if _, err := NewPasswordConfig(); err == nil {
			t.Errorf("Expected error for BCRYPT_COST=%s", cost)
		}
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("Hash equals plaintext")
	}
	if !cfg.VerifyPassword("correct horse battery staple", hash) {
		t.Error("VerifyPassword rejected the correct password")
	}
	if cfg.VerifyPassword("wrong password", hash) {
		t.Error("VerifyPassword accepted a wrong password")
	}
}

func TestVerifyPassword_Pepper(t *testing.T) {
	peppered := &PasswordConfig{BcryptCost: 10, Pepper: "global-pepper"}
	plain := &PasswordConfig{BcryptCost: 10}

	hash, err := peppered.HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !peppered.VerifyPassword("hunter2hunter2", hash) {
		t.Error("Peppered config rejected its own hash")
	}
	if plain.VerifyPassword("hunter2hunter2", hash) {
		t.Error("Unpeppered config accepted a peppered hash")
	}
}
