package detector

import "testing"

func TestIsEnglish(t *testing.T) {
	d := New()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "english sentence",
			text: "The quick brown fox jumps over the lazy dog near the river.",
			want: true,
		},
		{
			name: "spanish sentence",
			text: "El rápido zorro marrón salta sobre el perro perezoso cerca del río.",
			want: false,
		},
		{
			name: "russian sentence",
			text: "Быстрая коричневая лиса прыгает через ленивую собаку у реки.",
			want: false,
		},
		{
			name: "short text assumed english",
			text: "hola amigo",
			want: true,
		},
		{
			name: "empty assumed english",
			text: "",
			want: true,
		},
		{
			name: "whitespace assumed english",
			text: "   \n ",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.IsEnglish(tt.text); got != tt.want {
				t.Errorf("IsEnglish(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	d := New()

	code, ok := d.Detect("This is clearly an English sentence about nothing in particular.")
	if !ok || code != "en" {
		t.Errorf("Detect = (%q, %v), want (en, true)", code, ok)
	}

	code, ok = d.Detect("Ceci est clairement une phrase française qui ne parle de rien.")
	if !ok || code != "fr" {
		t.Errorf("Detect = (%q, %v), want (fr, true)", code, ok)
	}

	if _, ok := d.Detect(""); ok {
		t.Error("Detect(\"\") reported a language")
	}
}
