package sanitize

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims whitespace", "  hello  ", "hello"},
		{"strips script tag", `hi <script>alert(1)</script> there`, "hi  there"},
		{"strips script with attrs", `a<script type="text/javascript">x</script>b`, "ab"},
		{"case insensitive", `a<SCRIPT>x</SCRIPT>b`, "ab"},
		{"multiline payload", "a<script>\nevil()\n</script>b", "ab"},
		{"plain text untouched", "Проект по автоматизации", "Проект по автоматизации"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "ivan.petrov@example.com", "x+tag@sub.domain.org"}
	for _, e := range valid {
		if !ValidEmail(e) {
			t.Errorf("ValidEmail(%q) = false, want true", e)
		}
	}
	invalid := []string{"", "plain", "no@tld", "spaces in@mail.com", "@missing.local", "a@b."}
	for _, e := range invalid {
		if ValidEmail(e) {
			t.Errorf("ValidEmail(%q) = true, want false", e)
		}
	}
}
