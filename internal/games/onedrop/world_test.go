package onedrop

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/one-drop/internal/config"
	"github.com/vovakirdan/one-drop/internal/core"
)

const tick = 1.0 / 60

func testLayout(placements ...Placement) Layout {
	return Layout{
		ID:    "test",
		Title: "Test",
		Zones: []ZoneSpec{{Name: "Test", Color: core.ColorSky, Placements: placements}},
	}
}

func newTestWorld(layout Layout) *World {
	return NewWorld(config.DefaultOneDropConfig(), layout, rand.New(rand.NewSource(1)))
}

// stepUntil steps until cond holds and returns the number of steps taken,
// or -1 if it never did within limit steps.
func stepUntil(w *World, limit int, cond func() bool) int {
	for i := 1; i <= limit; i++ {
		w.Step(tick, Controls{})
		if cond() {
			return i
		}
	}
	return -1
}

func TestGearEndsRun(t *testing.T) {
	w := newTestWorld(testLayout(
		Placement{Variant: VariantGear, X: At(400), Y: At(250), W: gearSize, H: gearSize},
	))

	if n := stepUntil(w, 300, func() bool { return w.Session.Ended }); n < 0 {
		t.Fatal("droplet never reached the gear")
	}

	if w.Session.Outcome != core.OutcomeCrushed {
		t.Errorf("Outcome = %v, want crushed", w.Session.Outcome)
	}
	if w.Session.Message != "Crushed by gear..." {
		t.Errorf("Message = %q", w.Session.Message)
	}
	if !w.Drop.Ended() || w.Drop.VX != 0 || w.Drop.VY != 0 {
		t.Error("droplet should be ended and still")
	}
	if !w.Camera.Detached {
		t.Error("camera should stop following")
	}

	x, y, elapsed := w.Drop.X, w.Drop.Y, w.Session.Elapsed
	for i := 0; i < 30; i++ {
		w.Step(tick, Controls{Move: 1, Jump: true})
	}
	if w.Drop.X != x || w.Drop.Y != y || w.Session.Elapsed != elapsed {
		t.Error("world changed after the run ended")
	}
}

func TestEvaporatorEndsAfterExactTicks(t *testing.T) {
	w := newTestWorld(testLayout(
		Placement{Variant: VariantSunbeam, X: At(400), Y: At(500), W: 800, H: 1000},
	))

	for i := 1; i <= 9; i++ {
		w.Step(tick, Controls{})
		if w.Session.Ended {
			t.Fatalf("ended early at tick %d", i)
		}
	}
	if w.Session.Message != "Sunlight shrinks you..." {
		t.Errorf("Message = %q", w.Session.Message)
	}

	w.Step(tick, Controls{})
	if !w.Session.Ended {
		t.Fatalf("not ended after 10 ticks, size %v", w.Drop.Size)
	}
	if w.Session.Outcome != core.OutcomeEvaporated {
		t.Errorf("Outcome = %v, want evaporated", w.Session.Outcome)
	}
	if w.Session.Message != "Evaporated by sunlight..." {
		t.Errorf("Message = %q", w.Session.Message)
	}
	if w.Drop.Visible {
		t.Error("evaporated droplet should be hidden")
	}
	if w.Drop.Size != 0.05 {
		t.Errorf("Size = %v, want 0.05", w.Drop.Size)
	}
}

func TestHeatWallVaporizes(t *testing.T) {
	w := newTestWorld(testLayout(
		Placement{Variant: VariantHeatWall, X: At(400), Y: At(500), W: 800, H: 1000},
	))

	if n := stepUntil(w, 20, func() bool { return w.Session.Ended }); n != 5 {
		t.Errorf("vaporized after %d ticks, want 5", n)
	}
	if w.Session.Message != "Vaporized by industrial heat..." {
		t.Errorf("Message = %q", w.Session.Message)
	}
}

func seedLayout() Layout {
	return testLayout(
		Placement{Variant: VariantSeed, X: At(400), Y: At(250), W: seedSize, H: seedSize},
	)
}

func TestSeedGrowthStages(t *testing.T) {
	w := newTestWorld(seedLayout())

	if n := stepUntil(w, 300, func() bool { return w.Session.Planted }); n < 0 {
		t.Fatal("droplet never reached the seed")
	}
	t0 := w.Session.Elapsed

	if !w.Drop.Frozen || w.Drop.Ended() {
		t.Error("droplet should be frozen but active while the sprout grows")
	}
	if w.Session.GoalStage != 0 {
		t.Errorf("GoalStage = %d at contact, want 0", w.Session.GoalStage)
	}
	if w.Session.Message != "A sprout breaks the soil..." {
		t.Errorf("Message = %q", w.Session.Message)
	}

	stepUntil(w, 200, func() bool { return w.Session.GoalStage == 1 })
	if d := w.Session.Elapsed - t0; math.Abs(d-1) > 1.5*tick {
		t.Errorf("stage 1 after %.3fs, want 1s", d)
	}
	if w.Session.Message != "The sprout unfolds its leaves..." {
		t.Errorf("Message = %q", w.Session.Message)
	}
	if w.Session.Ended {
		t.Fatal("run ended at stage 1")
	}

	stepUntil(w, 200, func() bool { return w.Session.Ended })
	if d := w.Session.Elapsed - t0; math.Abs(d-2) > 1.5*tick {
		t.Errorf("success after %.3fs, want 2s", d)
	}
	if w.Session.Outcome != core.OutcomeSuccess {
		t.Errorf("Outcome = %v, want success", w.Session.Outcome)
	}
	if w.Session.Message != "Success! One drop sparked life." {
		t.Errorf("Message = %q", w.Session.Message)
	}
	if w.Session.GoalStage != 2 {
		t.Errorf("GoalStage = %d, want 2", w.Session.GoalStage)
	}
	if w.Sprout != 1 {
		t.Errorf("Sprout = %v, want 1", w.Sprout)
	}
}

func TestRestartCancelsSeedGrowth(t *testing.T) {
	w := newTestWorld(seedLayout())

	if n := stepUntil(w, 300, func() bool { return w.Session.Planted }); n < 0 {
		t.Fatal("droplet never reached the seed")
	}
	for i := 0; i < 90; i++ {
		w.Step(tick, Controls{})
	}
	if w.Session.GoalStage != 1 || w.Session.Ended {
		t.Fatalf("at 1.5s: stage %d, ended %v; want stage 1 and running", w.Session.GoalStage, w.Session.Ended)
	}
	if w.Session.Message != "The sprout unfolds its leaves..." {
		t.Fatalf("Message = %q at 1.5s", w.Session.Message)
	}

	w.Restart()

	if w.Session.Planted || w.Session.GoalStage != 0 || w.Session.Pending() != 0 {
		t.Fatalf("restart kept growth state: planted %v, stage %d, pending %d",
			w.Session.Planted, w.Session.GoalStage, w.Session.Pending())
	}
	if w.Drop.Frozen {
		t.Error("restarted droplet should not be frozen")
	}

	// Past the 2s mark of the old run, but before the new droplet reaches
	// the seed.
	for i := 0; i < 40; i++ {
		w.Step(tick, Controls{})
	}
	if w.Session.Ended || w.Session.Outcome == core.OutcomeSuccess {
		t.Error("stale growth event ended the new run")
	}
	if w.Session.GoalStage != 0 {
		t.Errorf("GoalStage = %d, want 0", w.Session.GoalStage)
	}
	if w.Session.Message == "Success! One drop sparked life." {
		t.Error("stale success message after restart")
	}
}

func TestRestartIsFullReset(t *testing.T) {
	w := NewWorld(config.DefaultOneDropConfig(), ClassicLayout(), rand.New(rand.NewSource(3)))
	hazards := len(w.Level.Hazards)

	for i := 0; i < 45; i++ {
		w.Step(tick, Controls{Move: -1})
	}
	if w.Session.Elapsed == 0 || w.Drop.Y == 100 {
		t.Fatal("world did not advance")
	}

	w.Restart()

	if w.Drop.X != 400 || w.Drop.Y != 100 || w.Drop.Size != 0.15 {
		t.Errorf("droplet not at spawn: %+v", w.Drop)
	}
	if !w.Drop.Visible || w.Drop.Ended() || w.Drop.Frozen {
		t.Error("droplet should be visible and active")
	}
	s := w.Session
	if s.Elapsed != 0 || s.Ended || s.Message != "" || s.LastZone != "none" || s.Timer != "Time: 0.0" {
		t.Errorf("session not reset: %+v", s)
	}
	if w.Camera.Detached {
		t.Error("camera should follow again")
	}
	if len(w.Level.Hazards) != hazards {
		t.Errorf("hazards = %d, want %d", len(w.Level.Hazards), hazards)
	}

	w.Step(tick, Controls{})
	if s.Message != "You are in: Atmosphere" {
		t.Errorf("first tick message = %q", s.Message)
	}
}

func TestRestartAfterEnd(t *testing.T) {
	w := newTestWorld(testLayout(
		Placement{Variant: VariantGear, X: At(400), Y: At(200), W: gearSize, H: gearSize},
	))
	stepUntil(w, 300, func() bool { return w.Session.Ended })

	w.Restart()
	if w.Session.Ended || w.Drop.Ended() {
		t.Error("restart should return to an active run")
	}
	w.Step(tick, Controls{})
	if w.Session.Elapsed == 0 {
		t.Error("restarted run should advance")
	}
}

func TestWorldDeterministic(t *testing.T) {
	a := NewWorld(config.DefaultOneDropConfig(), ClassicLayout(), rand.New(rand.NewSource(99)))
	b := NewWorld(config.DefaultOneDropConfig(), ClassicLayout(), rand.New(rand.NewSource(99)))

	for i := 0; i < 240; i++ {
		in := Controls{Move: (i / 30 % 3) - 1, Jump: i%50 == 0}
		a.Step(tick, in)
		b.Step(tick, in)
	}

	if a.Drop.X != b.Drop.X || a.Drop.Y != b.Drop.Y || a.Drop.Size != b.Drop.Size {
		t.Errorf("droplets diverged: %+v vs %+v", a.Drop, b.Drop)
	}
	if a.Session.Message != b.Session.Message {
		t.Errorf("messages diverged: %q vs %q", a.Session.Message, b.Session.Message)
	}
}

func TestCollideFiresOncePerContact(t *testing.T) {
	w := newTestWorld(testLayout(
		Placement{Variant: VariantVine, X: At(400), Y: At(250), W: vineW, H: vineH},
	))

	if n := stepUntil(w, 300, func() bool { return w.Session.Message == "Tangled in vines, slowed down..." }); n < 0 {
		t.Fatal("droplet never touched the vines")
	}

	// Let the bounces settle.
	for i := 0; i < 120; i++ {
		w.Step(tick, Controls{})
	}
	if !w.OnGround() {
		t.Fatal("droplet should rest on the vines")
	}

	w.Session.Say("marker")
	for i := 0; i < 60; i++ {
		w.Step(tick, Controls{})
	}
	if w.Session.Message != "marker" {
		t.Errorf("resting contact fired again: %q", w.Session.Message)
	}
}

func TestSteamVentLaunches(t *testing.T) {
	w := newTestWorld(testLayout(
		Placement{Variant: VariantSteamVent, X: At(400), Y: At(250), W: ventW, H: ventH},
	))

	if n := stepUntil(w, 300, func() bool { return w.Session.Message == "Steam jet pushes you upward..." }); n < 0 {
		t.Fatal("droplet never reached the vent")
	}
	if w.Drop.VY != -220 {
		t.Errorf("VY = %v, want -220", w.Drop.VY)
	}
}

func TestCloudGrowsDroplet(t *testing.T) {
	w := newTestWorld(testLayout(
		Placement{Variant: VariantCloud, X: At(400), Y: At(500), W: 800, H: 1000},
	))

	for i := 0; i < 40; i++ {
		w.Step(tick, Controls{})
	}
	if math.Abs(w.Drop.Size-0.30) > 0.01 {
		t.Errorf("Size = %v, want about the 0.30 cap", w.Drop.Size)
	}
	if w.Drop.Size > 0.30+1e-9 {
		t.Errorf("Size %v exceeds cloud cap", w.Drop.Size)
	}
	if w.Session.Message != "Nourished by cloud..." {
		t.Errorf("Message = %q", w.Session.Message)
	}
}

func TestReflectPoolSendsDropletToZoneEntry(t *testing.T) {
	layout := Layout{
		ID: "test",
		Zones: []ZoneSpec{
			{Name: "Upper"},
			{Name: "Lower", Placements: []Placement{
				{Variant: VariantReflectPool, X: At(300), Y: At(500), W: poolW, H: poolH},
			}},
		},
	}
	w := newTestWorld(layout)
	pool := w.Level.Hazards[0]

	w.Drop.X, w.Drop.Y = 300, 1500
	w.engine.Apply(pool)

	if w.Drop.X != 400 || w.Drop.Y != 1060 {
		t.Errorf("droplet at (%v, %v), want (400, 1060)", w.Drop.X, w.Drop.Y)
	}
	if w.Drop.VY != -200 {
		t.Errorf("VY = %v, want -200", w.Drop.VY)
	}
	if w.Session.Message != "The pool reflects you back up..." {
		t.Errorf("Message = %q", w.Session.Message)
	}
}

func TestEngineSkipsAfterEnd(t *testing.T) {
	w := newTestWorld(testLayout(
		Placement{Variant: VariantGear, X: At(100), Y: At(100), W: gearSize, H: gearSize},
		Placement{Variant: VariantCloud, X: At(700), Y: At(100), W: cloudW, H: cloudH},
	))
	gear, cloud := w.Level.Hazards[0], w.Level.Hazards[1]

	w.engine.Apply(gear)
	size := w.Drop.Size
	w.engine.Apply(cloud)

	if w.Drop.Size != size {
		t.Error("contact after the end changed the droplet")
	}
	if w.Session.Message != "Crushed by gear..." {
		t.Errorf("Message = %q", w.Session.Message)
	}
}

func TestJumpRequiresSupport(t *testing.T) {
	w := newTestWorld(testLayout())

	w.Step(tick, Controls{Jump: true})
	if w.Drop.VY < 0 {
		t.Error("jumped in mid-air")
	}

	stepUntil(w, 600, func() bool { return w.OnGround() && w.Drop.VY == 0 })
	w.Step(tick, Controls{Jump: true})
	if w.Drop.VY >= 0 {
		t.Errorf("VY = %v after grounded jump, want upward", w.Drop.VY)
	}
}

func TestCameraFollowsWithinWorld(t *testing.T) {
	w := newTestWorld(ClassicLayout())
	if w.Camera.Y != 0 {
		t.Errorf("camera Y = %v at spawn, want 0", w.Camera.Y)
	}

	w.Drop.Y = 1500
	w.Camera.Follow(w.Drop.X, w.Drop.Y, w.Level.Width, w.Level.Height)
	if w.Camera.Y != 1200 {
		t.Errorf("camera Y = %v, want 1200", w.Camera.Y)
	}

	w.Camera.Follow(400, 2990, w.Level.Width, w.Level.Height)
	if w.Camera.Y != 2400 {
		t.Errorf("camera Y = %v, want clamped 2400", w.Camera.Y)
	}
}

func TestFastFallTouchesThinPadAtLowFrameRate(t *testing.T) {
	w := newTestWorld(testLayout(
		Placement{Variant: VariantFertilePad, X: At(400), Y: At(400), W: 200, H: 10},
	))
	w.Drop.VY = 900

	for i := 0; i < 6 && w.Drop.Y < 500; i++ {
		w.Step(0.1, Controls{})
	}

	if w.Drop.Y < 500 {
		t.Fatalf("droplet at y=%v, want past the pad", w.Drop.Y)
	}
	if w.Drop.Size <= 0.15 {
		t.Errorf("Size = %v, pad was skipped", w.Drop.Size)
	}
	if w.Session.Message != "You are nourished by fertile ground..." {
		t.Errorf("Message = %q", w.Session.Message)
	}
}

func TestOverlapAppliesOncePerTickAcrossSubsteps(t *testing.T) {
	w := newTestWorld(testLayout(
		Placement{Variant: VariantSunbeam, X: At(400), Y: At(300), W: 800, H: 400},
		Placement{Variant: VariantFertilePad, X: At(100), Y: At(900), W: 20, H: 10},
	))
	w.Drop.Y = 200
	w.Drop.VY = 900

	if n := w.substeps(0.1); n != 9 {
		t.Fatalf("substeps = %d, want 9", n)
	}
	w.Step(0.1, Controls{})

	if math.Abs(w.Drop.Size-0.14) > 1e-9 {
		t.Errorf("Size = %v, want one sunbeam shrink to 0.14", w.Drop.Size)
	}
}
