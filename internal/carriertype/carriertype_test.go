package carriertype

import (
	"errors"
	"testing"
)

func TestFromExtension(t *testing.T) {
	cases := []struct {
		ext  string
		want CarrierType
	}{
		{"wave", WAV},
		{"WAVE", WAV},
		{".wav", WAV},
		{"jfif", JPEG},
		{"mpeg4", MP4},
	}

	for _, c := range cases {
		got, err := FromExtension(c.ext)
		if err != nil {
			t.Errorf("FromExtension(%q) returned error: %v", c.ext, err)
			continue
		}
		if got != c.want {
			t.Errorf("FromExtension(%q) = %v, want %v", c.ext, got, c.want)
		}
	}
}

func TestFromExtensionUnknown(t *testing.T) {
	_, err := FromExtension("xyz")
	if !errors.Is(err, ErrUnknownFiletype) {
		t.Fatalf("FromExtension(\"xyz\") error = %v, want ErrUnknownFiletype", err)
	}
}
