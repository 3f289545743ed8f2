package monitor

import "time"

type Status struct {
	PostgreSQL bool      `json:"postgresql"`
	Redis      bool      `json:"redis"`
	Subtasks   bool      `json:"subtasks"`
	LastCheck  time.Time `json:"last_check"`
}
