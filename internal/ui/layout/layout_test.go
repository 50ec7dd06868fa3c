package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{120, 40, false},
		{79, 24, true},
		{80, 23, true},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestFrame_Render(t *testing.T) {
	f := Frame{
		Title:  "Assessment",
		Status: "3 / 45",
		Hints:  []KeyHint{{Key: "Esc", Description: "Back"}},
	}

	var gotW, gotH int
	out := f.Render(100, 30, func(w, h int) string {
		gotW, gotH = w, h
		return "BODY"
	})

	if gotW != 100 {
		t.Errorf("body width = %d, want 100", gotW)
	}
	// Header and footer are one bordered line each.
	if gotH != 30-3-3 {
		t.Errorf("body height = %d, want 24", gotH)
	}
	if h := lipgloss.Height(out); h != 30 {
		t.Errorf("frame height = %d, want 30", h)
	}
	for _, want := range []string{appName, "Assessment", "3 / 45", "Esc", "Back", "BODY"} {
		if !strings.Contains(out, want) {
			t.Errorf("frame missing %q", want)
		}
	}
}

func TestFrame_RenderNoRoom(t *testing.T) {
	gotH := -1
	Frame{}.Render(80, 2, func(_, h int) string {
		gotH = h
		return ""
	})
	if gotH != 0 {
		t.Errorf("body height = %d, want 0", gotH)
	}
}

func TestRenderMinSizeMessage(t *testing.T) {
	out := RenderMinSizeMessage(60, 20)
	if !strings.Contains(out, "60 × 20") || !strings.Contains(out, "80 × 24") {
		t.Errorf("message = %q", out)
	}
}
