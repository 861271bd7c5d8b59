package monitor

import "time"

type Status struct {
	Cassandra bool      `json:"cassandra"`
	LastCheck time.Time `json:"last_check"`
}
