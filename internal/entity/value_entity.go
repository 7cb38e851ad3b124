package entity

// Value is a core value backing one or more principles. Priority 1 is the
// highest; priorities decide weight when principles conflict.
type Value struct {
	Id          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Priority    int    `json:"priority" yaml:"priority"`
	IsCore      bool   `json:"is_core" yaml:"is_core"`
}
