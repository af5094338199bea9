package utils

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestJWTRoundTrip(t *testing.T) {
	token, exp, err := GenerateJWT("s3cret", TokenClaims{UserID: "u-1", Email: "a@b.c", Role: "admin"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if time.Until(exp) < AccessTokenTTL-time.Minute {
		t.Errorf("expiry too early: %v", exp)
	}

	claims, err := ValidateJWT("s3cret", token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != "u-1" || claims.Email != "a@b.c" || claims.Role != "admin" {
		t.Errorf("unexpected claims %+v", claims)
	}

	if _, err := ValidateJWT("other", token); err == nil {
		t.Error("token validated with the wrong secret")
	}
	if _, err := ValidateJWT("s3cret", token+"x"); err == nil {
		t.Error("tampered token validated")
	}
}

func TestGenerateJWTRequiresSecret(t *testing.T) {
	if _, _, err := GenerateJWT("", TokenClaims{UserID: "u"}); err == nil {
		t.Fatal("expected an error without a secret")
	}
}

func TestPasswordHashing(t *testing.T) {
	old := PasswordCost
	PasswordCost = bcrypt.MinCost
	defer func() { PasswordCost = old }()

	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("unexpected hash format %q", hash)
	}
	if !ValidatePassword(hash, "correct horse") {
		t.Error("valid password rejected")
	}
	if ValidatePassword(hash, "battery staple") {
		t.Error("wrong password accepted")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "QUOTATION_PREFIX", "ASSET_FETCH_TIMEOUT", "PDF_QR_STAMP", "EXPIRY_CRON", "PUBLIC_BASE_URL"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig()
	if cfg.Port != "9000" || cfg.QuotationPrefix != "RLE" || cfg.AssetTimeout != 20*time.Second {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.PDFQRStamp || cfg.ExpiryCron != "30 0 * * *" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ASSET_FETCH_TIMEOUT", "5")
	t.Setenv("PDF_QR_STAMP", "true")
	t.Setenv("PUBLIC_BASE_URL", "https://quotes.example/")
	t.Setenv("QUOTATION_PREFIX", "ACME")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, ,https://b.example")

	cfg := LoadConfig()
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("origins = %q", cfg.CORSOrigins)
	}
	if cfg.AssetTimeout != 5*time.Second {
		t.Errorf("timeout = %v", cfg.AssetTimeout)
	}
	if !cfg.PDFQRStamp || cfg.PublicBaseURL != "https://quotes.example" || cfg.QuotationPrefix != "ACME" {
		t.Errorf("unexpected config %+v", cfg)
	}

	t.Setenv("ASSET_FETCH_TIMEOUT", "0")
	if got := LoadConfig().AssetTimeout; got != 0 {
		t.Errorf("zero timeout not honoured: %v", got)
	}
}

func TestImageHosts(t *testing.T) {
	t.Setenv("ASSET_ALLOWED_HOSTS", "cdn.example, *.supabase.co,")
	t.Setenv("PUBLIC_BASE_URL", "https://quotes.example:8443/")
	cfg := LoadConfig()

	got := strings.Join(cfg.ImageHosts(), " ")
	if got != "cdn.example *.supabase.co quotes.example" {
		t.Errorf("ImageHosts() = %q", got)
	}
	if hosts := (Config{}).ImageHosts(); len(hosts) != 0 {
		t.Errorf("empty config hosts = %v", hosts)
	}
}
