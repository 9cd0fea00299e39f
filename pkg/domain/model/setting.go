package model

import "time"

// SettingCostThreshold is the key of the cents value above which a
// meeting is flagged as unusually expensive.
const SettingCostThreshold = "cost_threshold"

// DefaultCostThresholdCents is used when no threshold setting exists
// or the stored value cannot be parsed ($2,000).
const DefaultCostThresholdCents = 200000

// Setting is a generic key/value record. Values are stored as strings
// and parsed by typed accessors on the use case layer.
type Setting struct {
	Key       string
	Value     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
