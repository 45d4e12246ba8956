package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNewFitsWorld(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	if cam.X != 1280 || cam.Y != 720 {
		t.Errorf("expected camera at (1280, 720), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 0.5 {
		t.Errorf("expected zoom 0.5 to show the whole world, got %f", cam.Zoom)
	}
}

func TestNewScreenSizedWorld(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	if cam.Zoom != 1 || cam.MinZoom != 1 {
		t.Errorf("zoom = %f min = %f, want 1:1", cam.Zoom, cam.MinZoom)
	}
	sx, sy := cam.WorldToScreen(0, 0)
	if !near(sx, 0) || !near(sy, 0) {
		t.Errorf("world origin at (%f, %f), want screen origin", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.SetZoom(2)
	cam.Pan(300, -100)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanStopsAtEdge(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.SetZoom(1)

	cam.Pan(-5000, 0)
	if cam.X != 640 {
		t.Errorf("expected X clamped to half the view (640), got %f", cam.X)
	}
	minX, _, _, _ := cam.VisibleWorldBounds()
	if minX != 0 {
		t.Errorf("visible area starts at %f, want world edge 0", minX)
	}

	cam.Pan(0, 5000)
	if cam.Y != 1080 {
		t.Errorf("expected Y clamped to 1080, got %f", cam.Y)
	}
}

func TestPanIgnoredWhenWorldFits(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.Pan(200, 200)
	if cam.X != 640 || cam.Y != 360 {
		t.Errorf("camera moved to (%f, %f) though the world fits", cam.X, cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	cam.SetZoom(0.1)
	if cam.Zoom != 0.5 {
		t.Errorf("expected zoom clamped to 0.5, got %f", cam.Zoom)
	}

	cam.SetZoom(10.0)
	if cam.Zoom != 4.0 {
		t.Errorf("expected zoom clamped to 4.0, got %f", cam.Zoom)
	}
}

func TestMinZoomFitsLimitingDimension(t *testing.T) {
	cam := New(800, 600, 1600, 800)

	// min(800/1600, 600/800) = 0.5: width is the limit
	if !near(cam.MinZoom, 0.5) {
		t.Errorf("expected MinZoom 0.5, got %f", cam.MinZoom)
	}

	visibleW := cam.ViewportW / cam.Zoom
	if !near(visibleW, cam.WorldW) {
		t.Errorf("at min zoom, visible width %f should equal world width %f", visibleW, cam.WorldW)
	}
}

func TestZoomAtKeepsCursorPoint(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.SetZoom(1)

	wx, wy := cam.ScreenToWorld(700, 400)
	cam.ZoomAt(2, 700, 400)
	gx, gy := cam.ScreenToWorld(700, 400)
	if !near(gx, wx) || !near(gy, wy) {
		t.Errorf("point under cursor moved from (%f,%f) to (%f,%f)", wx, wy, gx, gy)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.SetZoom(1)

	// Visible range: (640, 360) to (1920, 1080)
	if !cam.IsVisible(1280, 720, 10) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(2400, 1300, 10) {
		t.Error("far point should not be visible")
	}
	if !cam.IsVisible(600, 720, 100) {
		t.Error("edge point with large radius should be visible")
	}
}

func TestResizeAndSetWorld(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	cam.Resize(1600, 900)
	cam.SetWorld(1600, 900)
	if cam.Zoom != 1 || cam.X != 800 || cam.Y != 450 {
		t.Errorf("after growing with the window: zoom %f at (%f, %f)", cam.Zoom, cam.X, cam.Y)
	}

	cam.Resize(800, 450)
	if !near(cam.MinZoom, 0.5) || cam.Zoom < cam.MinZoom {
		t.Errorf("after shrinking the window: min %f zoom %f", cam.MinZoom, cam.Zoom)
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.SetZoom(2.5)
	cam.Pan(400, 400)

	cam.Reset()

	if cam.X != 1280 || cam.Y != 720 {
		t.Errorf("expected position (1280, 720), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom %f, got %f", cam.MinZoom, cam.Zoom)
	}
}
