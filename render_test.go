package cprompt

import "testing"

func TestRender(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		text      string
		cursor    int
		formatted map[string]string
		want      string
	}{
		{
			"styled token",
			"", "a b", 3,
			map[string]string{"b": "<styled-b>"},
			"\x1b[2K\x1b[1Ga <styled-b>\x1b[4G",
		},
		{
			"cursor inside text",
			"> ", "h!i", 2, nil,
			"\x1b[2K\x1b[1G> h!i\x1b[5G",
		},
		{
			"styled message counts visible width",
			"\x1b[1m>\x1b[0m ", "", 0, nil,
			"\x1b[2K\x1b[1G\x1b[1m>\x1b[0m \x1b[3G",
		},
		{
			"wide characters",
			"", "世a", 1, nil,
			"\x1b[2K\x1b[1G世a\x1b[3G",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.message, tt.text, tt.cursor, tt.formatted); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderText(t *testing.T) {
	formatted := map[string]string{"b": "B", "go": "<go>"}
	tests := []struct {
		text string
		want string
	}{
		{"a b", "a B"},
		{"a  b", "a  B"},
		{"ab b", "ab B"},
		{"go go", "<go> <go>"},
		{"gopher", "gopher"},
		{"", ""},
		{" b ", " B "},
	}
	for _, tt := range tests {
		if got := RenderText(tt.text, formatted); got != tt.want {
			t.Errorf("RenderText(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestRenderIsPure(t *testing.T) {
	formatted := map[string]string{"b": "B"}
	first := Render("> ", "a b", 1, formatted)
	second := Render("> ", "a b", 1, formatted)
	if first != second {
		t.Errorf("repeated renders differ: %q and %q", first, second)
	}
	if formatted["b"] != "B" || len(formatted) != 1 {
		t.Errorf("formatted table changed: %v", formatted)
	}
}
