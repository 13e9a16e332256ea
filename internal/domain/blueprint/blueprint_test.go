package blueprint

import "testing"

func TestStyleMerge(t *testing.T) {
	base := DefaultStyle()
	merged := base.Merge(Style{PrimaryColor: "BLUE"})

	if merged[PrimaryColor] != "BLUE" {
		t.Errorf("primary color = %q, want BLUE", merged[PrimaryColor])
	}
	if merged[BackgroundColor] != "BLACK" || merged[ShapeStyle] != ShapeStyleGeometric {
		t.Errorf("defaults not kept: %v", merged)
	}
	if base[PrimaryColor] != "WHITE" {
		t.Errorf("Merge modified the receiver: %v", base)
	}
}

func TestStyleMergeNil(t *testing.T) {
	merged := DefaultStyle().Merge(nil)
	if len(merged) != 3 {
		t.Fatalf("expected 3 fields, got %v", merged)
	}
}
