package rental

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := map[string]string{
		"+20 100 111 2233": "201001112233",
		"00201001112233":   "201001112233",
		"":                 "",
		"n/a":              "",
	}

	for in, want := range tests {
		if got := NormalizePhone(in); got != want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWhatsAppURL(t *testing.T) {
	link, ok := WhatsAppURL("+201001112233", "hello there")
	if !ok {
		t.Fatal("WhatsAppURL() ok = false")
	}
	if want := "https://wa.me/201001112233?text=hello%20there"; link != want {
		t.Errorf("WhatsAppURL() = %q, want %q", link, want)
	}

	if _, ok := WhatsAppURL("  ", "hello"); ok {
		t.Error("WhatsAppURL() ok = true for a number without digits")
	}
}
