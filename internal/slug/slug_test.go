package slug

import (
	"strings"
	"testing"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain english", "Hello World", "hello-world"},
		{"cyrillic", "Привет мир", "privet-mir"},
		{"mixed", "Новости AI 2024", "novosti-ai-2024"},
		{"punctuation dropped", "Что такое CRM-система?", "chto-takoe-crm-sistema"},
		{"whitespace collapsed", "  a \t b \n c  ", "a-b-c"},
		{"hyphen runs collapsed", "a -- b - - c", "a-b-c"},
		{"leading and trailing trimmed", "--- hi ---", "hi"},
		{"hard sign vanishes", "объём", "obyom"},
		{"yo zh sch", "Ёжик в щавеле", "yozhik-v-schavele"},
		{"unmapped symbols dropped", "日本語 title", "title"},
		{"empty result allowed", "???", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Make(tt.title); got != tt.want {
				t.Errorf("Make(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestMake_Deterministic(t *testing.T) {
	title := "Разработка чат-ботов под ключ"
	first := Make(title)
	for i := 0; i < 5; i++ {
		if got := Make(title); got != first {
			t.Fatalf("Make not deterministic: %q vs %q", got, first)
		}
	}
}

func TestMake_Truncates(t *testing.T) {
	got := Make(strings.Repeat("слово ", 50))
	if len(got) > 100 {
		t.Errorf("len = %d, want <= 100", len(got))
	}
	if strings.HasSuffix(got, "-") {
		t.Errorf("truncated slug ends with hyphen: %q", got)
	}
}

func TestDisambiguate(t *testing.T) {
	got := Disambiguate("privet-mir")
	if !strings.HasPrefix(got, "privet-mir-") {
		t.Errorf("got %q, want prefix %q", got, "privet-mir-")
	}
	if len(got) <= len("privet-mir-") {
		t.Errorf("no suffix appended: %q", got)
	}
}
