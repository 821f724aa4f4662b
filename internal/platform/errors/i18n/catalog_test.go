package i18n

import (
	"testing"

	apperrors "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/errors"
	i18ncatalog "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/i18n/catalog"
)

func TestGetCatalogFallback(t *testing.T) {
	base := GetCatalog(i18ncatalog.BaseLocale)
	if base == nil {
		t.Fatal("expected base catalog")
	}
	fallback := GetCatalog("missing-locale")
	if fallback != base {
		t.Fatal("expected fallback to base catalog")
	}
	if GetCatalog("") != base {
		t.Fatal("expected blank locale to resolve to base catalog")
	}
}

func TestBaseCatalogCoversEveryCode(t *testing.T) {
	base := GetCatalog(i18ncatalog.BaseLocale)
	for _, code := range apperrors.All() {
		if !base.Has(string(code)) {
			t.Errorf("missing %s message for %s", i18ncatalog.BaseLocale, code)
		}
	}
}

func TestFormatRendersMetadata(t *testing.T) {
	base := GetCatalog(i18ncatalog.BaseLocale)
	got := base.Format(string(apperrors.CodeUnknownUnit), map[string]string{"ID": "99"})
	if got != "Unit type 99 does not exist." {
		t.Fatalf("message = %q", got)
	}
}

func TestFormatFallbacks(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code":   "hello {{.Name}}",
		"broken": "{{ if .Name }}",
	})

	if cat.Format("unknown", nil) != "unknown" {
		t.Fatal("expected code fallback when template missing")
	}
	if cat.Format("code", nil) != "hello <no value>" {
		t.Fatal("expected template to render missing metadata")
	}
	if cat.Format("broken", map[string]string{"Name": "X"}) != "{{ if .Name }}" {
		t.Fatal("expected template fallback on parse error")
	}
}
