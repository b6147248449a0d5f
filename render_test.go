package pickit

import (
	"math"
	"testing"
)

func TestBuildPolygonFan(t *testing.T) {
	pts := []Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {-5, 5}}
	verts, inds := buildPolygonFan(nil, nil, pts, Translate(1, 2), ColorRed)
	if len(verts) != 5 || len(inds) != 9 {
		t.Fatalf("verts = %d inds = %d", len(verts), len(inds))
	}
	if verts[1].DstX != 11 || verts[1].DstY != 2 {
		t.Errorf("vertex 1 = (%v, %v), want (11, 2)", verts[1].DstX, verts[1].DstY)
	}
	for i := 0; i < len(inds); i += 3 {
		if inds[i] != 0 {
			t.Errorf("triangle %d does not start at the hub", i/3)
		}
	}

	// Appending keeps earlier indices valid.
	verts, inds = buildPolygonFan(verts, inds, pts[:3], IdentityTransform, ColorRed)
	if len(verts) != 8 || inds[len(inds)-3] != 5 {
		t.Errorf("second fan base = %d", inds[len(inds)-3])
	}

	if v, i := buildPolygonFan(nil, nil, pts[:2], IdentityTransform, ColorRed); v != nil || i != nil {
		t.Error("fewer than three points should add nothing")
	}
}

func TestLargeShapesKeepIndicesInRange(t *testing.T) {
	pts := make([]Vec2, 70000)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(len(pts))
		pts[i] = Vec2{math.Cos(a), math.Sin(a)}
	}
	verts, inds := buildPolygonFan(nil, nil, pts, IdentityTransform, ColorRed)
	last := inds[len(inds)-3:]
	if len(verts) != 70000 || last[0] != 0 || last[1] != 69998 || last[2] != 69999 {
		t.Errorf("last triangle = %v", last)
	}

	verts, inds = appendStroke(nil, nil, pts[:20001], 2, IdentityTransform, ColorRed)
	if len(verts) != 80000 || len(inds) != 120000 {
		t.Fatalf("verts = %d inds = %d", len(verts), len(inds))
	}
	var top uint32
	for _, i := range inds {
		top = max(top, i)
	}
	if top != 79999 {
		t.Errorf("max index = %d, want 79999", top)
	}
}

func TestSolidVertexClampsStraightAlpha(t *testing.T) {
	v := solidVertex(Vec2{1, 2}, Color{2, 0.5, -1, 0.25})
	if v.ColorR != 1 || v.ColorG != 0.5 || v.ColorB != 0 || v.ColorA != 0.25 {
		t.Errorf("color = %v %v %v %v", v.ColorR, v.ColorG, v.ColorB, v.ColorA)
	}
	if v.SrcX != 0.5 || v.SrcY != 0.5 {
		t.Error("solid vertices sample the white pixel center")
	}
}

func TestPerpendicular(t *testing.T) {
	px, py := perpendicular(Vec2{0, 0}, Vec2{10, 0})
	if px != 0 || py != 1 {
		t.Errorf("perpendicular = (%v, %v)", px, py)
	}
	px, py = perpendicular(Vec2{3, 3}, Vec2{3, 3})
	if px != 0 || py != -1 {
		t.Errorf("degenerate = (%v, %v)", px, py)
	}
}

func TestAppendCircleSegments(t *testing.T) {
	tests := []struct {
		radius float64
		want   int
	}{
		{1, 16},
		{64, 32},
		{1000, 128},
	}
	for _, tt := range tests {
		pts := appendCircle(nil, Vec2{5, 5}, tt.radius)
		if len(pts) != tt.want {
			t.Errorf("radius %v: %d segments, want %d", tt.radius, len(pts), tt.want)
		}
		for _, p := range pts {
			if d := math.Hypot(p.X-5, p.Y-5); !approxEqual(d, tt.radius, 1e-6) {
				t.Fatalf("point %v at distance %v", p, d)
			}
		}
	}
}
