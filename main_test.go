package main

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"quotations/models"
	"quotations/repository"
	"quotations/utils"
)

func TestSeedAdmin(t *testing.T) {
	utils.PasswordCost = bcrypt.MinCost
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "seed.db")), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(&models.Profile{}); err != nil {
		t.Fatal(err)
	}
	profiles := repository.NewProfileRepository(db)
	cfg := utils.Config{AdminEmail: "owner@example.com", AdminPassword: "s3cret-pass", AdminName: "Owner"}

	if err := seedAdmin(t.Context(), profiles, utils.Config{}, zap.NewNop()); err != nil {
		t.Fatalf("empty config: %v", err)
	}
	for range 2 {
		if err := seedAdmin(t.Context(), profiles, cfg, zap.NewNop()); err != nil {
			t.Fatal(err)
		}
	}

	all, err := profiles.List(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d profiles, want 1", len(all))
	}
	p := all[0]
	if p.Role != models.RoleAdmin || !p.Active || p.FullName != "Owner" {
		t.Errorf("seeded %+v", p)
	}
	if !utils.ValidatePassword(p.PasswordHash, "s3cret-pass") {
		t.Error("password hash does not match")
	}
}

func TestCORSConfigExposesPDFHeaders(t *testing.T) {
	cfg := CORSConfig([]string{"https://app.example"})
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, h := range cfg.ExposeHeaders {
		if h == "X-PDF-URL" {
			found = true
		}
	}
	if !found {
		t.Errorf("expose headers %v", cfg.ExposeHeaders)
	}
}
