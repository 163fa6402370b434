package language

import "testing"

func TestSupported(t *testing.T) {
	for _, code := range []Code{"en", "es", "zh", "te"} {
		if !Supported(code) {
			t.Errorf("expected %q to be supported", code)
		}
	}
	if Supported("xx") {
		t.Error("expected xx to be unsupported")
	}
}

func TestDisplayName(t *testing.T) {
	t.Run("known code", func(t *testing.T) {
		if got := DisplayName(Spanish); got != "Spanish" {
			t.Errorf("DisplayName(es) = %q, want Spanish", got)
		}
	})

	t.Run("unknown code falls back to the code", func(t *testing.T) {
		if got := DisplayName("xx"); got != "xx" {
			t.Errorf("DisplayName(xx) = %q, want xx", got)
		}
	})
}

func TestLocaleForName(t *testing.T) {
	cases := []struct {
		name   string
		locale string
	}{
		{"English", "en-IN"},
		{"Spanish", "es-ES"},
		{"Chinese", "zh-CN"},
		{"Kannada", "kn-IN"},
		{"Klingon", "en-US"}, // unmapped
		{"", "en-US"},
	}
	for _, tc := range cases {
		if got := LocaleForName(tc.name); got != tc.locale {
			t.Errorf("LocaleForName(%q) = %q, want %q", tc.name, got, tc.locale)
		}
	}
}

func TestAllIsOrderedAndComplete(t *testing.T) {
	all := All()
	if len(all) != 15 {
		t.Fatalf("expected 15 languages, got %d", len(all))
	}
	if all[0].Code != English || all[len(all)-1].Code != Telugu {
		t.Errorf("unexpected picker order: first %q, last %q", all[0].Code, all[len(all)-1].Code)
	}

	// Mutating the returned slice must not affect the table.
	all[0].Name = "mutated"
	if DisplayName(English) != "English" {
		t.Error("All returned the backing array")
	}
}
