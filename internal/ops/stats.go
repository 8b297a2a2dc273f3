package ops

import (
	"github.com/hpungsan/promptbin/internal/config"
	"github.com/hpungsan/promptbin/internal/store"
)

// ActivityItem is one entry in the recent-activity feed.
type ActivityItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	UpdatedAt string `json:"updated_at"`
}

// StatsOutput aggregates counts across the whole store.
type StatsOutput struct {
	TotalPrompts   int            `json:"total_prompts"`
	ByCategory     map[string]int `json:"by_category"`
	TotalTags      int            `json:"total_tags"`
	RecentActivity []ActivityItem `json:"recent_activity"`
}

// Stats computes store-wide totals, per-category counts, the number of
// distinct tags, and the ten most recently updated records.
func Stats(st *store.Store, cfg *config.Config) (*StatsOutput, error) {
	out := &StatsOutput{
		ByCategory:     make(map[string]int, len(cfg.Categories)),
		RecentActivity: []ActivityItem{},
	}
	for _, category := range cfg.Categories {
		out.ByCategory[category] = 0
	}

	records, err := st.ReadAll()
	if err != nil {
		return nil, err
	}

	tags := make(map[string]bool)
	for _, rec := range records {
		out.TotalPrompts++
		out.ByCategory[rec.Category]++
		for _, tag := range rec.Tags {
			tags[tag] = true
		}
	}
	out.TotalTags = len(tags)

	// records are already sorted by updated_at descending
	for i, rec := range records {
		if i >= MaxRecentActivity {
			break
		}
		out.RecentActivity = append(out.RecentActivity, ActivityItem{
			ID:        rec.ID,
			Title:     rec.Title,
			Category:  rec.Category,
			UpdatedAt: rec.UpdatedAt.Format("2006-01-02 15:04"),
		})
	}
	return out, nil
}
