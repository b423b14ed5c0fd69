package onedrop

import (
	"math"
	"math/rand"
	"testing"
)

func TestZoneAt(t *testing.T) {
	lvl := BuildLevel(ClassicLayout(), 800, 1000, rand.New(rand.NewSource(1)))

	tests := []struct {
		y    float64
		want string
	}{
		{-50, "Atmosphere"},
		{0, "Atmosphere"},
		{999.9, "Atmosphere"},
		{1000, "Industrial"},
		{1999, "Industrial"},
		{2000, "Fertile Earth"},
		{2999, "Fertile Earth"},
		{5000, "Fertile Earth"},
	}

	for _, tt := range tests {
		got := lvl.ZoneAt(tt.y).Name
		if got != tt.want {
			t.Errorf("ZoneAt(%v) = %q, want %q", tt.y, got, tt.want)
		}
		// Pure: same answer on repeated calls.
		if again := lvl.ZoneAt(tt.y).Name; again != got {
			t.Errorf("ZoneAt(%v) not stable: %q then %q", tt.y, got, again)
		}
	}
}

func TestZoneAtEmptyLevel(t *testing.T) {
	lvl := &Level{}
	if got := lvl.ZoneAt(10).Name; got != noZone {
		t.Errorf("ZoneAt on empty level = %q, want %q", got, noZone)
	}
}

func TestLayoutsStackZonesWithoutGaps(t *testing.T) {
	for _, layout := range Layouts() {
		t.Run(layout.ID, func(t *testing.T) {
			lvl := BuildLevel(layout, 800, 1000, rand.New(rand.NewSource(7)))

			if lvl.Zones[0].Top != 0 {
				t.Errorf("first zone top = %v, want 0", lvl.Zones[0].Top)
			}
			for i := 1; i < len(lvl.Zones); i++ {
				if lvl.Zones[i].Top != lvl.Zones[i-1].Bottom {
					t.Errorf("zone %d top %v != zone %d bottom %v",
						i, lvl.Zones[i].Top, i-1, lvl.Zones[i-1].Bottom)
				}
			}
			if last := lvl.Zones[len(lvl.Zones)-1]; last.Bottom != lvl.Height {
				t.Errorf("last zone bottom = %v, want level height %v", last.Bottom, lvl.Height)
			}

			seeds := 0
			for _, h := range lvl.Hazards {
				if h.Variant == VariantSeed {
					seeds++
				}
			}
			if seeds != 1 {
				t.Errorf("seeds = %d, want 1", seeds)
			}
		})
	}
}

func TestLayoutsHaveExpectedZones(t *testing.T) {
	classic := ClassicLayout()
	if len(classic.Zones) != 3 {
		t.Errorf("classic zones = %d, want 3", len(classic.Zones))
	}
	deep := DeepLayout()
	if len(deep.Zones) != 5 {
		t.Errorf("deep zones = %d, want 5", len(deep.Zones))
	}
	if _, ok := LayoutByID("onedrop_deep"); !ok {
		t.Error("LayoutByID(onedrop_deep) not found")
	}
	if _, ok := LayoutByID("missing"); ok {
		t.Error("LayoutByID(missing) should not be found")
	}
}

func TestBuildLevelRandomPlacementsInRange(t *testing.T) {
	layout := ClassicLayout()

	for seed := int64(0); seed < 50; seed++ {
		lvl := BuildLevel(layout, 800, 1000, rand.New(rand.NewSource(seed)))

		i := 0
		for zi, zs := range layout.Zones {
			top := float64(zi) * 1000
			for _, p := range zs.Placements {
				h := lvl.Hazards[i]
				i++
				if h.Motion != nil {
					continue
				}
				if h.X < p.X.Min || h.X > p.X.Max {
					t.Fatalf("seed %d: %s x=%v outside [%v, %v]", seed, h.Variant, h.X, p.X.Min, p.X.Max)
				}
				if h.Y < top+p.Y.Min || h.Y > top+p.Y.Max {
					t.Fatalf("seed %d: %s y=%v outside placement", seed, h.Variant, h.Y)
				}
				if h.X != math.Trunc(h.X) {
					t.Fatalf("seed %d: %s x=%v is not a whole pixel", seed, h.Variant, h.X)
				}
			}
		}
	}
}

func TestBuildLevelDeterministic(t *testing.T) {
	a := BuildLevel(DeepLayout(), 800, 1000, rand.New(rand.NewSource(42)))
	b := BuildLevel(DeepLayout(), 800, 1000, rand.New(rand.NewSource(42)))

	if len(a.Hazards) != len(b.Hazards) {
		t.Fatalf("hazard counts differ: %d vs %d", len(a.Hazards), len(b.Hazards))
	}
	for i := range a.Hazards {
		ha, hb := a.Hazards[i], b.Hazards[i]
		if ha.Variant != hb.Variant || ha.X != hb.X || ha.Y != hb.Y {
			t.Errorf("hazard %d differs: %+v vs %+v", i, ha, hb)
		}
	}
}

func TestMovingHazardsStartAtLowEnd(t *testing.T) {
	lvl := BuildLevel(ClassicLayout(), 800, 1000, rand.New(rand.NewSource(1)))
	for _, h := range lvl.Hazards {
		if h.Motion == nil {
			continue
		}
		if h.X != h.Motion.Min() {
			t.Errorf("%s starts at x=%v, want %v", h.Variant, h.X, h.Motion.Min())
		}
	}
}
