package color

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		raw  string
		want Family
	}{
		{"Black", BlackGreys},
		{"  Matte BLACK ", BlackGreys},
		{"charcoal", BlackGreys},
		{"Off White", WhiteOffs},
		{"oat beige", WhiteOffs},
		{"Navy", Blues},
		{"powder blue", Blues},
		{"Firozi", Blues},
		{"mehndi", Greens},
		{"mehendi", Mixed},
		{"Mehdi", Greens},
		{"bottle green", Greens},
		{"Maroon", Reds},
		{"Tomato Red", Reds},
		{"Lavender", Purples},
		{"tea pink", Pinks},
		{"mustard", Yellows},
		{"Rust Orange", Oranges},
		{"coral", Oranges},
		{"gradient peach orange", Oranges},
		{"chikko", Browns},
		{"copper", Browns},
		{"Golden", GoldsMetals},
		{"silver", GoldsMetals},
		{"glitter holographic", Mixed},
		{"", Mixed},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := Classify(tt.raw); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestClassify_WholeWordsOnly(t *testing.T) {
	// "redwood" contains "red" but not as a whole word.
	if got := Classify("redwood"); got != Mixed {
		t.Errorf("Classify(redwood) = %q, want %q", got, Mixed)
	}
	if got := Classify("blackish"); got != Mixed {
		t.Errorf("Classify(blackish) = %q, want %q", got, Mixed)
	}
}

func TestClassify_FirstFamilyWins(t *testing.T) {
	// Matches both Black & Greys and Whites; black is listed first.
	if got := Classify("black and white"); got != BlackGreys {
		t.Errorf("got %q, want %q", got, BlackGreys)
	}
	// "rani pink" matches Reds (rani) before Pinks.
	if got := Classify("rani pink"); got != Reds {
		t.Errorf("got %q, want %q", got, Reds)
	}
}

func TestClassifyOptional(t *testing.T) {
	if got := ClassifyOptional(nil); got != Unknown {
		t.Errorf("ClassifyOptional(nil) = %q, want %q", got, Unknown)
	}
	s := "sky blue"
	if got := ClassifyOptional(&s); got != Blues {
		t.Errorf("ClassifyOptional(sky blue) = %q, want %q", got, Blues)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		if Classify("Tomato Red") != Reds {
			t.Fatal("classification must be stable across calls")
		}
	}
}

func TestFamilies(t *testing.T) {
	fams := Families()
	if len(fams) != 13 {
		t.Fatalf("len = %d, want 13", len(fams))
	}
	if fams[0] != BlackGreys || fams[len(fams)-2] != Mixed || fams[len(fams)-1] != Unknown {
		t.Errorf("unexpected order: %v", fams)
	}
}
