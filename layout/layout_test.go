package layout

import (
	"errors"
	"testing"
	"unicode"
)

func TestTransform(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		target Layout
		want   string
	}{
		{
			name:   "mistyped russian word",
			text:   "ghbdtn",
			target: RU,
			want:   "привет",
		},
		{
			name:   "mistyped english word",
			text:   "руддщ",
			target: EN,
			want:   "hello",
		},
		{
			name:   "leading capital is preserved",
			text:   "Ghbdtn",
			target: RU,
			want:   "Привет",
		},
		{
			name:   "punctuation keys follow the physical layout",
			text:   "b pf xtv;",
			target: RU,
			want:   "и за чемж",
		},
		{
			name:   "unmapped characters pass through",
			text:   "12345 \t!?",
			target: RU,
			want:   "12345 \t!?",
		},
		{
			name:   "empty input",
			text:   "",
			target: EN,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transform(tt.text, tt.target)
			if err != nil {
				t.Fatalf("Transform() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Transform(%q, %v) = %q, want %q", tt.text, tt.target, got, tt.want)
			}
		})
	}
}

func TestTransformUnknownTarget(t *testing.T) {
	_, err := Transform("text", Layout(42))
	if !errors.Is(err, ErrUnknownLayout) {
		t.Fatalf("Transform() error = %v, want ErrUnknownLayout", err)
	}
}

func TestTransformRoundTrip(t *testing.T) {
	for en, ru := range enToRU {
		toRU, err := Transform(string(en), RU)
		if err != nil {
			t.Fatalf("Transform(%q, RU) error = %v", en, err)
		}
		if toRU != string(ru) {
			t.Errorf("Transform(%q, RU) = %q, want %q", en, toRU, ru)
		}

		back, err := Transform(toRU, EN)
		if err != nil {
			t.Fatalf("Transform(%q, EN) error = %v", toRU, err)
		}
		if back != string(en) {
			t.Errorf("round trip of %q = %q, want original", en, back)
		}
	}
}

func TestTransformCasePreservation(t *testing.T) {
	for en := range enToRU {
		upper := unicode.ToUpper(en)
		if upper == en {
			continue // punctuation has no case
		}
		got, err := Transform(string(upper), RU)
		if err != nil {
			t.Fatalf("Transform(%q, RU) error = %v", upper, err)
		}
		for _, r := range got {
			if !unicode.IsUpper(r) {
				t.Errorf("Transform(%q, RU) = %q, lost upper case", upper, got)
			}
		}
	}
}
