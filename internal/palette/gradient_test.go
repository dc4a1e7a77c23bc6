package palette

import "testing"

func testPalette() *Palette {
	var slots [MaxColors]Color
	slots[0] = RGB(1, 0, 0)
	slots[1] = RGB(0, 0, 1)
	slots[2] = RGB(0, 1, 0)
	slots[3] = RGB(1, 1, 1)
	return NewPalette(slots)
}

// TestGradient_TwoColorRGB checks the documented two-bar red/blue scenario.
func TestGradient_TwoColorRGB(t *testing.T) {
	p := testPalette()

	testCases := []struct {
		progress float64
		want     Color
	}{
		{progress: 0.25, want: Color{0.75, 0, 0.25}},
		{progress: 0.75, want: Color{0.25, 0, 0.75}},
	}

	for _, tc := range testCases {
		got := Gradient(tc.progress, "12", p, SpaceRGB)
		if !approxColor(got, tc.want, tolerance) {
			t.Errorf("Gradient(%v) = %v, want %v", tc.progress, got, tc.want)
		}
	}
}

// TestGradient_StartIsFirstColor verifies progress 0 lands exactly on the
// first anchor.
func TestGradient_StartIsFirstColor(t *testing.T) {
	p := testPalette()
	for _, space := range []Space{SpaceRGB, SpaceHSV, SpaceHSL} {
		got := Gradient(0, "213", p, space)
		if !approxColor(got, RGB(0, 0, 1), tolerance) {
			t.Errorf("%s: Gradient(0) = %v, want blue", space, got)
		}
	}
}

// TestGradient_ApproachesLastColor verifies continuity towards progress 1.
func TestGradient_ApproachesLastColor(t *testing.T) {
	p := testPalette()
	for _, space := range []Space{SpaceRGB, SpaceHSV, SpaceHSL} {
		got := Gradient(0.999999, "123", p, space)
		if !approxColor(got, RGB(0, 1, 0), 1e-4) {
			t.Errorf("%s: Gradient(1-) = %v, want approximately green", space, got)
		}
	}
}

// TestGradient_SingleColorPattern verifies a one-colour pattern degenerates
// to a solid colour in every space.
func TestGradient_SingleColorPattern(t *testing.T) {
	p := testPalette()
	for _, space := range []Space{SpaceRGB, SpaceHSV, SpaceHSL} {
		for _, progress := range []float64{0, 0.1, 0.5, 0.9} {
			got := Gradient(progress, "4", p, space)
			if !approxColor(got, RGB(1, 1, 1), tolerance) {
				t.Errorf("%s: Gradient(%v) = %v, want white", space, progress, got)
			}
		}
	}
}

// TestGradient_HSVBlendsThroughHue verifies HSV blending walks the hue
// channel instead of mixing RGB channels.
func TestGradient_HSVBlendsThroughHue(t *testing.T) {
	p := testPalette()

	// Red (h=0) to green (h=1/3): midpoint hue 1/6 is pure yellow in HSV,
	// whereas RGB blending gives a dark (0.5, 0.5, 0).
	hsv := Gradient(0.5, "13", p, SpaceHSV)
	if !approxColor(hsv, RGB(1, 1, 0), tolerance) {
		t.Errorf("HSV midpoint = %v, want yellow", hsv)
	}
	rgb := Gradient(0.5, "13", p, SpaceRGB)
	if !approxColor(rgb, RGB(0.5, 0.5, 0), tolerance) {
		t.Errorf("RGB midpoint = %v, want (0.5, 0.5, 0)", rgb)
	}
}

// TestPatternColor_Cycles verifies cyclic lookup for the PATTERN style.
func TestPatternColor_Cycles(t *testing.T) {
	p := testPalette()
	want := []Color{RGB(1, 0, 0), RGB(0, 0, 1), RGB(1, 0, 0), RGB(0, 0, 1), RGB(1, 0, 0)}
	for i, w := range want {
		if got := PatternColor(i, "12", p); got != w {
			t.Errorf("PatternColor(%d) = %v, want %v", i, got, w)
		}
	}
}

// TestResolver_ColorAt verifies bar-centre progress for each style.
func TestResolver_ColorAt(t *testing.T) {
	p := testPalette()

	gradient := &Resolver{Style: StyleGradient, Pattern: "12", Palette: p, Space: SpaceRGB}
	if got := gradient.ColorAt(0, 2); !approxColor(got, Color{0.75, 0, 0.25}, tolerance) {
		t.Errorf("gradient bar 0 = %v", got)
	}
	if got := gradient.ColorAt(1, 2); !approxColor(got, Color{0.25, 0, 0.75}, tolerance) {
		t.Errorf("gradient bar 1 = %v", got)
	}

	pattern := &Resolver{Style: StylePattern, Pattern: "21", Palette: p}
	if got := pattern.ColorAt(0, 4); got != RGB(0, 0, 1) {
		t.Errorf("pattern bar 0 = %v, want blue", got)
	}

	solid := &Resolver{Style: StyleSingle, Solid: RGB(0.1, 0.2, 0.3)}
	if got := solid.ColorAt(3, 4); got != RGB(0.1, 0.2, 0.3) {
		t.Errorf("solid bar = %v", got)
	}
}

// TestParseStyleAndSpace verifies configuration names round-trip.
func TestParseStyleAndSpace(t *testing.T) {
	for _, s := range []Style{StyleSingle, StylePattern, StyleGradient} {
		got, err := ParseStyle(s.String())
		if err != nil || got != s {
			t.Errorf("ParseStyle(%q) = %v, %v", s.String(), got, err)
		}
	}
	for _, s := range []Space{SpaceRGB, SpaceHSV, SpaceHSL} {
		got, err := ParseSpace(s.String())
		if err != nil || got != s {
			t.Errorf("ParseSpace(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseStyle("rainbow"); err == nil {
		t.Error("ParseStyle should reject unknown styles")
	}
	if _, err := ParseSpace("lab"); err == nil {
		t.Error("ParseSpace should reject unknown spaces")
	}
	if got, err := ParseSpace("hsv"); err != nil || got != SpaceHSV {
		t.Errorf("ParseSpace is case-insensitive, got %v, %v", got, err)
	}
}
