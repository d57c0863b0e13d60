package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("depth_exceeded", nil); msg == "depth_exceeded" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("depth_exceeded", nil); msg == "definition nesting is too deep" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_Placeholders(t *testing.T) {
	got := T("cycle_truncated", map[string]string{"path": "#/properties/a"})
	want := "Recursive reference detected at #/properties/a! Defaulting to any"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got := T("no_such_code", nil); got != "no_such_code" {
		t.Fatalf("unknown codes should echo, got %q", got)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upper{})
	defer SetTranslator(nil)
	if got := T("invalid_option", nil); got != "X:invalid_option" {
		t.Fatalf("custom translator not used, got %q", got)
	}
}
