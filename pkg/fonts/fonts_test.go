package fonts

import (
	"testing"

	"golang.org/x/image/font"
)

func TestFaces(t *testing.T) {
	for _, tf := range []Typeface{Regular, Medium, Bold, BoldItalic} {
		t.Run(tf.String(), func(t *testing.T) {
			face, err := Face(tf, 48)
			if err != nil {
				t.Fatalf("Face: %v", err)
			}
			defer face.Close()

			w := font.MeasureString(face, "Exclusive")
			if w <= 0 {
				t.Errorf("MeasureString = %v, want > 0", w)
			}
		})
	}
}

func TestFontIsCached(t *testing.T) {
	a, err := Font(Bold)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Font(Bold)
	if a != b {
		t.Error("Font should return the same parsed font on repeated calls")
	}
}

func TestUnknownTypeface(t *testing.T) {
	if _, err := Face(Typeface(99), 12); err == nil {
		t.Error("Face(99) should fail")
	}
}
