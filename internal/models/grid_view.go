package models

import "time"

// CellView is one rendered grid cell.
type CellView struct {
	Date           string   `json:"date" yaml:"date"`
	Time           string   `json:"time" yaml:"time"`
	Key            string   `json:"key" yaml:"key"`
	AvailableCount int      `json:"availableCount" yaml:"availableCount"`
	AvailableNames []string `json:"availableNames" yaml:"availableNames"`
	Ratio          float64  `json:"ratio" yaml:"ratio"`
	HeatmapLevel   int      `json:"heatmapLevel" yaml:"heatmapLevel"`
	Fallback       bool     `json:"fallback,omitempty" yaml:"fallback,omitempty"`
}

type RowView struct {
	Date  string     `json:"date" yaml:"date"`
	Cells []CellView `json:"cells" yaml:"cells"`
}

// GridView is everything a client needs to draw the heatmap.
type GridView struct {
	EventID      string    `json:"eventId" yaml:"eventId"`
	Title        string    `json:"title" yaml:"title"`
	TimeZone     string    `json:"timeZone" yaml:"timeZone"`
	Participants []string  `json:"participants" yaml:"participants"`
	Times        []string  `json:"times" yaml:"times"`
	Rows         []RowView `json:"rows" yaml:"rows"`
	// IgnoredSlots counts stored keys that are not on this event's grid.
	IgnoredSlots int       `json:"ignoredSlots" yaml:"ignoredSlots"`
	CreatedAt    time.Time `json:"createdAt" yaml:"createdAt"`
}

// SlotDetail lists who can and cannot make one slot. Unavailable includes
// participants who never answered for it.
type SlotDetail struct {
	Key              string   `json:"key" yaml:"key"`
	Date             string   `json:"date" yaml:"date"`
	Time             string   `json:"time" yaml:"time"`
	AvailableNames   []string `json:"availableNames" yaml:"availableNames"`
	UnavailableNames []string `json:"unavailableNames" yaml:"unavailableNames"`
	AvailableCount   int      `json:"availableCount" yaml:"availableCount"`
	Ratio            float64  `json:"ratio" yaml:"ratio"`
	HeatmapLevel     int      `json:"heatmapLevel" yaml:"heatmapLevel"`
}

type ParticipantAvailability struct {
	Name         string   `json:"name" yaml:"name"`
	Exists       bool     `json:"exists" yaml:"exists"`
	Availability []string `json:"availability" yaml:"availability"`
}
