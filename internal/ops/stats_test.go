package ops

import "testing"

func TestStats(t *testing.T) {
	st, cfg := setupTest(t)
	mustCreate(t, st, cfg, CreateInput{Category: "coding", Title: "A", Body: "a", Tags: []string{"go", "review"}})
	mustCreate(t, st, cfg, CreateInput{Category: "coding", Title: "B", Body: "b", Tags: []string{"go"}})
	mustCreate(t, st, cfg, CreateInput{Category: "writing", Title: "C", Body: "c"})

	out, err := Stats(st, cfg)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if out.TotalPrompts != 3 {
		t.Errorf("TotalPrompts = %d, want 3", out.TotalPrompts)
	}
	if out.ByCategory["coding"] != 2 || out.ByCategory["writing"] != 1 || out.ByCategory["analysis"] != 0 {
		t.Errorf("ByCategory = %v", out.ByCategory)
	}
	if out.TotalTags != 2 {
		t.Errorf("TotalTags = %d, want 2 distinct tags", out.TotalTags)
	}
	if len(out.RecentActivity) != 3 {
		t.Errorf("RecentActivity = %d entries, want 3", len(out.RecentActivity))
	}
}

func TestStatsRecentActivityCapped(t *testing.T) {
	st, cfg := setupTest(t)
	for i := 0; i < MaxRecentActivity+3; i++ {
		mustCreate(t, st, cfg, CreateInput{Category: "coding", Title: "P", Body: "b"})
	}

	out, err := Stats(st, cfg)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if len(out.RecentActivity) != MaxRecentActivity {
		t.Errorf("RecentActivity = %d entries, want %d", len(out.RecentActivity), MaxRecentActivity)
	}
}

func TestStatsEmptyStore(t *testing.T) {
	st, cfg := setupTest(t)

	out, err := Stats(st, cfg)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if out.TotalPrompts != 0 || out.TotalTags != 0 {
		t.Errorf("empty store stats = %+v", out)
	}
	if out.RecentActivity == nil || len(out.RecentActivity) != 0 {
		t.Errorf("RecentActivity should be an empty slice, got %v", out.RecentActivity)
	}
}
