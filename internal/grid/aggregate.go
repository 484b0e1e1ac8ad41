package grid

import "sort"

// MaxLevel is the highest heatmap bucket.
const MaxLevel = 5

// SlotStats summarises who is available for one slot.
type SlotStats struct {
	AvailableCount int      `json:"availableCount" yaml:"availableCount"`
	AvailableNames []string `json:"availableNames" yaml:"availableNames"`
	Ratio          float64  `json:"ratio" yaml:"ratio"`
	Level          int      `json:"heatmapLevel" yaml:"heatmapLevel"`
}

// Names returns the participant names in ascending order.
func Names(participants map[string]SlotSet) []string {
	names := make([]string, 0, len(participants))
	for name := range participants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HeatmapLevel buckets count/total into 0..5. Zero means nobody is
// available; otherwise the level is ceil(5*count/total), i.e. one bucket per
// fifth of the participants.
func HeatmapLevel(count, total int) int {
	if count <= 0 || total <= 0 {
		return 0
	}
	level := (MaxLevel*count + total - 1) / total
	if level < 1 {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return level
}

// Ratio is count/total, or 0 when there are no participants.
func Ratio(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(count) / float64(total)
}

// Aggregate computes stats for every key in keys plus every key any
// participant selected. Keys outside the event grid are counted as-is.
func Aggregate(participants map[string]SlotSet, keys ...string) map[string]SlotStats {
	names := Names(participants)
	total := len(names)

	byKey := make(map[string][]string, len(keys))
	for _, k := range keys {
		if _, ok := byKey[k]; !ok {
			byKey[k] = nil
		}
	}
	// names is sorted, so every per-key list comes out sorted and unique.
	for _, name := range names {
		for k := range participants[name] {
			byKey[k] = append(byKey[k], name)
		}
	}

	stats := make(map[string]SlotStats, len(byKey))
	for k, available := range byKey {
		if available == nil {
			available = []string{}
		}
		stats[k] = SlotStats{
			AvailableCount: len(available),
			AvailableNames: available,
			Ratio:          Ratio(len(available), total),
			Level:          HeatmapLevel(len(available), total),
		}
	}
	return stats
}

// UnavailableNames lists participants that did not select key. This does
// not tell "marked unavailable" apart from "never answered for this slot".
func UnavailableNames(participants map[string]SlotSet, key string) []string {
	out := []string{}
	for _, name := range Names(participants) {
		if !participants[name].Has(key) {
			out = append(out, name)
		}
	}
	return out
}
