package theme

import (
	"strings"
	"testing"
)

func TestGradientEndpoints(t *testing.T) {
	got := Gradient("#000000", "#ffffff", 3)
	if len(got) != 3 {
		t.Fatalf("got %d colours", len(got))
	}
	if got[0] != "#000000" || !strings.EqualFold(got[2], "#ffffff") {
		t.Fatalf("endpoints = %v", got)
	}
	if got[1] == got[0] || got[1] == got[2] {
		t.Fatalf("midpoint not blended: %v", got)
	}
}

func TestGradientBadInputFallsBack(t *testing.T) {
	got := Gradient("nope", "#ffffff", 2)
	if got[0] != "nope" || got[1] != "nope" {
		t.Fatalf("got %v", got)
	}
	if Gradient("#000000", "#ffffff", 0) != nil {
		t.Fatal("expected nil for n=0")
	}
}

func TestDepthStyleClamps(t *testing.T) {
	th := ForBackground(true)
	if len(th.Tree.Depth) != DepthLevels {
		t.Fatalf("got %d depth styles", len(th.Tree.Depth))
	}
	deep := th.Tree.DepthStyle(DepthLevels + 4).Render("x")
	last := th.Tree.Depth[DepthLevels-1].Render("x")
	if deep != last {
		t.Fatalf("deep levels should reuse the last style")
	}
	if (TreeTheme{}).DepthStyle(2).Render("x") != "x" {
		t.Fatal("empty theme should render plain text")
	}
}
