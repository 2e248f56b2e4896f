package plan

import (
	"time"

	"tablegrape/entities"
	"tablegrape/pkg/weather"
)

// Task is generated fresh per call and never persisted. Ordering within a
// response is rule-evaluation order; the cap is applied to that order.
type Task struct {
	Title    string   `json:"title"`
	Reason   string   `json:"reason"`
	Priority string   `json:"priority"` // high|medium|low
	BlockID  *string  `json:"block_id"`
	Tags     []string `json:"tags"`
}

type Insight struct {
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Risk    string   `json:"risk"` // medium|high
	Window  string   `json:"window"`
	Actions []string `json:"actions"`
}

// Input carries every signal the engine reads. Generate is a pure function
// of this struct; identical inputs produce identical output.
type Input struct {
	Status     *entities.CropStatus // latest check-in, nil when none exists
	Forecast   weather.Forecast
	Scouting   []entities.ScoutingLog
	Irrigation []entities.IrrigationLog
	Brix       []entities.BrixSample
	Spray      []entities.SprayLog
	Today      time.Time
}
