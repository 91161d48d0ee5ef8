package game

import "testing"

func TestTickCountsActionsAndWeather(t *testing.T) {
	w := connectedWorld(VariantNetwork)
	w.WeatherDuration = 2

	res := Tick(w, NetworkRules{}, highRand())
	if w.ActionCount != 1 || res.WeatherChanged || w.WeatherDuration != 1 {
		t.Fatalf("action=%d changed=%v duration=%d", w.ActionCount, res.WeatherChanged, w.WeatherDuration)
	}
	res = Tick(w, NetworkRules{}, highRand())
	if !res.WeatherChanged {
		t.Fatalf("weather should roll at zero")
	}
	if w.Weather != WeatherWindy || w.WeatherDuration != weatherMaxDuration {
		t.Fatalf("weather=%s duration=%d", w.Weather, w.WeatherDuration)
	}
}

func TestTickPassiveStores(t *testing.T) {
	w := connectedWorld(VariantCrops)
	w.HasRainCatcher = true
	w.WeatherDuration = 100

	water, seeds := 0, 0
	for i := 0; i < 8; i++ {
		res := Tick(w, CropRules{}, highRand())
		if res.Catcher != "" {
			water++
		}
		if res.GardenBed != "" {
			seeds++
		}
	}
	if water != 2 || w.Water != 2 {
		t.Fatalf("catcher fired %d times, water=%d", water, w.Water)
	}
	if seeds != 1 || w.Seeds != 1 {
		t.Fatalf("garden bed fired %d times, seeds=%d", seeds, w.Seeds)
	}

	w.HasDeepenedCatcher = true
	w.ActionCount = 0
	w.Water = 0
	for i := 0; i < 9; i++ {
		Tick(w, CropRules{}, highRand())
	}
	if w.Water != 3 {
		t.Fatalf("deepened catcher water=%d want 3", w.Water)
	}
}

func TestTickFlashOrder(t *testing.T) {
	res := TickResult{Panel: "panel", Catcher: "catcher", GardenBed: "bed", Residents: "resident"}
	got := res.Flashes()
	want := []string{"panel", "resident", "catcher", "bed"}
	if len(got) != len(want) {
		t.Fatalf("flashes=%v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("flashes=%v want %v", got, want)
		}
	}
}

func TestTickNeglectedPanelMakesNoPower(t *testing.T) {
	w := testWorld(VariantNetwork)
	w.WeatherDuration = 100
	for i := 0; i < 30; i++ {
		res := Tick(w, NetworkRules{}, lowRand())
		if res.PowerGained != 0 || res.Panel != "" {
			t.Fatalf("neglected panel changed: %+v", res)
		}
	}
	if w.Power != 0 {
		t.Fatalf("power=%d", w.Power)
	}
}
