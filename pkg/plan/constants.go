package plan

// Numeric policy for task and insight generation. These values are part of
// the engine's contract; changing one changes which tasks appear and in what
// truncation order.
const (
	MinTempThreshold       = 5.0  // °C, frost risk
	MaxTempThreshold       = 35.0 // °C, heat stress
	PrecipitationThreshold = 10.0 // mm, significant rain

	IrrigationDaysSince = 3 // days since last irrigation before suggesting one
	ScoutingDaysSince   = 7 // days since last scouting before suggesting one
	BrixSamplingDays    = 14
	HighSeverityIssue   = 2 // severity >= this requires follow-up
	IssueFollowupDays   = 3

	HarvestBrixTarget  = 15.0 // °Bx, harvest readiness
	HeavyRainThreshold = 20.0 // mm/day
	RainyDayThreshold  = 5.0  // mm/day, mildew-conducive

	MaxTasks = 8
)
