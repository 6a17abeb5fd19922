package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	want := []string{"Nightfox", "Kanagawa", "Slate"}
	if len(names) != len(want) {
		t.Fatalf("ThemeNames() returned %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("ThemeNames() = %v, want %v", names, want)
		}
	}
}

func TestNextTheme(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Nightfox", "Kanagawa"},
		{"Kanagawa", "Slate"},
		{"Slate", "Nightfox"},
		{"Unknown", "Nightfox"},
	}
	for _, tc := range cases {
		if got := NextTheme(tc.in); got != tc.want {
			t.Fatalf("NextTheme(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestGetTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		if got := GetTheme(name).Name; got != name {
			t.Fatalf("GetTheme(%s).Name = %q, want %q", name, got, name)
		}
	}
	if got := GetTheme("Unknown").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Nightfox (fallback)", got)
	}
}

func TestThemesDefineMarkColors(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		if th.Favorite == "" || th.Compare == "" {
			t.Fatalf("%s: Favorite = %q, Compare = %q, want both set", name, th.Favorite, th.Compare)
		}
	}
}

func TestPalettesFullyPopulated(t *testing.T) {
	for name, p := range palettes {
		for i, c := range p {
			if len(c) != 7 || c[0] != '#' {
				t.Fatalf("%s: palette[%d] = %q, want #rrggbb", name, i, c)
			}
		}
	}
	if len(palettes) != len(themeOrder) {
		t.Fatalf("palettes = %d, themeOrder = %d", len(palettes), len(themeOrder))
	}
}

func TestThemeNamesReturnsCopy(t *testing.T) {
	names := ThemeNames()
	names[0] = "mutated"
	if ThemeNames()[0] != "Nightfox" {
		t.Fatal("ThemeNames exposed internal order slice")
	}
}
