package palette

import (
	"slices"
	"strings"
	"testing"
)

func TestRofiFormatItem_UsesSingleNullSeparator(t *testing.T) {
	l := newLauncher("rofi")

	out := l.formatItem(Item{Label: "Profiles", IsHeader: true, Icon: "folder"})

	if got := strings.Count(out, "\x00"); got != 1 {
		t.Fatalf("expected exactly 1 NUL separator, got %d (%q)", got, out)
	}
	if !strings.HasPrefix(out, "<b>Profiles</b>\x00") {
		t.Fatalf("expected bold header, got %q", out)
	}
	if !strings.Contains(out, "nonselectable\x1ftrue\x1ficon\x1ffolder") {
		t.Fatalf("expected nonselectable and icon properties, got %q", out)
	}
}

func TestRofiFormatItem_EscapesMarkup(t *testing.T) {
	l := newLauncher("rofi")

	out := l.formatItem(Item{Label: "a <b> & c"})
	if out != "a &lt;b&gt; &amp; c" {
		t.Fatalf("unexpected escaping: %q", out)
	}
}

func TestRofiBuildArgs_MarksActiveRows(t *testing.T) {
	l := newLauncher("rofi")

	_, active := l.formatInput([]Item{
		{Label: "Profiles", IsHeader: true, IsActive: true},
		{Label: "Default"},
		{Label: "Profile2", IsActive: true},
	})
	args := l.buildArgs("gridsnap", "DP-1", active)

	for _, want := range [][]string{
		{"-format", "i"},
		{"-a", "2"},
		{"-selected-row", "2"},
		{"-mesg", "DP-1"},
		{"-p", "gridsnap"},
	} {
		i := slices.Index(args, want[0])
		if i < 0 || i+1 >= len(args) || args[i+1] != want[1] {
			t.Fatalf("expected %v in args, got %v", want, args)
		}
	}
	if !slices.Contains(args, "-no-custom") {
		t.Fatalf("expected -no-custom in args, got %v", args)
	}
}

func TestDmenuMarksActiveInText(t *testing.T) {
	l := newLauncher("dmenu")

	out := l.formatItem(Item{Label: "Default", IsActive: true})
	if out != "* Default" {
		t.Fatalf("got %q", out)
	}
}

func TestParseSelection(t *testing.T) {
	items := []Item{
		{Label: "Profiles", IsHeader: true},
		{Label: "Default", Action: "profile:Default", IsActive: true},
		{Label: "Exit", Action: "exit"},
	}

	rofi := newLauncher("rofi")
	got, err := rofi.parseSelection("2", items)
	if err != nil || got.Action != "exit" {
		t.Fatalf("rofi index selection = %+v, %v", got, err)
	}
	if _, err := rofi.parseSelection("7", items); err == nil {
		t.Fatal("expected out of range error")
	}

	dmenu := newLauncher("dmenu")
	got, err = dmenu.parseSelection("* Default", items)
	if err != nil || got.Action != "profile:Default" {
		t.Fatalf("dmenu selection = %+v, %v", got, err)
	}
	if _, err := dmenu.parseSelection("nope", items); err == nil {
		t.Fatal("expected unknown selection error")
	}
}

func TestNewBackend_RejectsUnknownName(t *testing.T) {
	if _, err := NewBackend("xmenu"); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
