package monitor

import "time"

type Status struct {
	PostgreSQL  bool      `json:"postgresql"`
	Redis       bool      `json:"redis"`
	RollupCache bool      `json:"rollup_cache"`
	RollupCount int       `json:"rollup_count"`
	LastCheck   time.Time `json:"last_check"`
}
