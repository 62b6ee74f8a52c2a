package theme

import "testing"

func TestSetActive(t *testing.T) {
	defer func() { Active = FlexokiDark }()

	if !SetActive("tokyo-night") || Active.Name != "tokyo-night" {
		t.Fatalf("SetActive(tokyo-night) -> %s", Active.Name)
	}
	if SetActive("solarized") {
		t.Error("SetActive(solarized) = true, want false")
	}
	if Active.Name != FlexokiDark.Name {
		t.Errorf("Active = %s after unknown name, want %s", Active.Name, FlexokiDark.Name)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != len(All) || names[0] != "flexoki-dark" {
		t.Errorf("Names() = %v", names)
	}
}

func TestAllThemesDefineHealthColors(t *testing.T) {
	for _, th := range All {
		if th.Green == "" || th.Yellow == "" || th.Red == "" || th.TextMuted == "" {
			t.Errorf("%s is missing a health color", th.Name)
		}
		if th.Surface == "" || th.Background == "" {
			t.Errorf("%s is missing a surface color", th.Name)
		}
	}
}
