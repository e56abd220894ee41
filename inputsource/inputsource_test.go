package inputsource

import (
	"testing"

	"layfix/layout"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		locale string
		want   layout.Layout
		wantOK bool
	}{
		{
			name:   "russian layout id",
			id:     "com.apple.keylayout.Russian",
			locale: "Russian",
			want:   layout.RU,
			wantOK: true,
		},
		{
			name:   "russian pc layout",
			id:     "com.apple.keylayout.RussianWin",
			locale: "Russian - PC",
			want:   layout.RU,
			wantOK: true,
		},
		{
			name:   "localized cyrillic name only",
			id:     "com.apple.keylayout.unknown",
			locale: "Русская",
			want:   layout.RU,
			wantOK: true,
		},
		{
			name:   "abc layout",
			id:     "com.apple.keylayout.ABC",
			locale: "ABC",
			want:   layout.EN,
			wantOK: true,
		},
		{
			name:   "us layout",
			id:     "com.apple.keylayout.US",
			locale: "U.S.",
			want:   layout.EN,
			wantOK: true,
		},
		{
			name:   "bare us id without name",
			id:     "com.apple.keylayout.US",
			locale: "",
			want:   layout.EN,
			wantOK: true,
		},
		{
			name:   "british english",
			id:     "com.apple.keylayout.British",
			locale: "British English",
			want:   layout.EN,
			wantOK: true,
		},
		{
			name:   "unsupported layout",
			id:     "com.apple.keylayout.German",
			locale: "German",
			wantOK: false,
		},
		{
			name:   "empty",
			id:     "",
			locale: "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.id, tt.locale)
			if ok != tt.wantOK {
				t.Fatalf("Classify(%q, %q) ok = %v, want %v", tt.id, tt.locale, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Classify(%q, %q) = %v, want %v", tt.id, tt.locale, got, tt.want)
			}
		})
	}
}
