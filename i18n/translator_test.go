package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("date_parse", nil); msg == "date_parse" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("date_parse", nil); msg == "date parsing error" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownCodeEchoes(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("expected code echo, got %q", msg)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(upper{})
	if msg := T("uri_parse", nil); msg != "X:uri_parse" {
		t.Fatalf("custom translator not used: %q", msg)
	}
	SetTranslator(nil)
	if msg := T("uri_parse", nil); msg != "URI parsing error" {
		t.Fatalf("expected english after reset, got %q", msg)
	}
}
