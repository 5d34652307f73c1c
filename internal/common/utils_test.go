package common

import "testing"

func TestSanitizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  https://example.com  ", "https://example.com"},
		{"https://example.com,", "https://example.com"},
		{"(https://example.com)", "https://example.com"},
		{"[docs](https://example.com/docs)", "https://example.com/docs"},
		{"https://example.com/path.", "https://example.com/path"},
	}

	for _, tt := range tests {
		if got := SanitizeURL(tt.in); got != tt.want {
			t.Errorf("SanitizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeAndValidateURLs(t *testing.T) {
	urls := []string{
		"https://example.com/react",
		" https://example.com/sql, ",
		"ftp://example.com/file",
		"not a url",
		"https://bad{host}.com",
	}

	valid, invalid := SanitizeAndValidateURLs(urls)

	if len(valid) != 2 {
		t.Fatalf("valid = %v, want 2 entries", valid)
	}
	if valid[1] != "https://example.com/sql" {
		t.Errorf("valid[1] = %q, want cleaned URL", valid[1])
	}
	if len(invalid) != 3 {
		t.Errorf("invalid = %v, want 3 entries", invalid)
	}
	// Rejected URLs keep their original form.
	if invalid[1] != "not a url" {
		t.Errorf("invalid[1] = %q, want original input", invalid[1])
	}
}
