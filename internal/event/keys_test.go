package event

import "testing"

func TestParseKeyRoundTripsNames(t *testing.T) {
	keys := []Key{KeyA, KeyZ, Key0, Key9, KeyEscape, KeySpace, KeyF1, KeyF12, KeyNumpad5, KeyArrowLeft, KeyLeftShift}
	for _, k := range keys {
		got, err := ParseKey(k.String())
		if err != nil {
			t.Fatalf("parse %q: %v", k.String(), err)
		}
		if got != k {
			t.Fatalf("parse %q: expected %#x, got %#x", k.String(), uint32(k), uint32(got))
		}
	}
}

func TestParseKeyAliasesAndCase(t *testing.T) {
	cases := map[string]Key{
		"ESC":    KeyEscape,
		"Enter":  KeyReturn,
		" q ":    KeyQ,
		"F5":     KeyF5,
		"RETURN": KeyReturn,
	}
	for in, want := range cases {
		got, err := ParseKey(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got != want {
			t.Fatalf("parse %q: expected %s, got %s", in, want, got)
		}
	}
}

func TestParseKeyRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "hyper", "f13"} {
		if _, err := ParseKey(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestDescribeIncludesWindowID(t *testing.T) {
	got := Describe(KeyboardEvent{ID: 7, Kind: KeyDown, Key: KeyEscape, Action: Press})
	if got != "window 7 key-down escape press" {
		t.Fatalf("unexpected description %q", got)
	}
}

func TestParseButton(t *testing.T) {
	for _, b := range []Button{ButtonLeft, ButtonRight, ButtonMiddle, ButtonX1, ButtonX2} {
		got, err := ParseButton(b.String())
		if err != nil || got != b {
			t.Fatalf("parse %q: got %s err=%v", b.String(), got, err)
		}
	}
	if _, err := ParseButton("wheel"); err == nil {
		t.Fatalf("expected error for unknown button")
	}
}
