package bracket

import "fmt"

// Stage is the closed set of bracket stages a round id can map to.
type Stage int

const (
	StageUnknown Stage = iota
	StageFirstRound
	StageSecondRound
	StageQuarterFinals
	StageSemiFinals
	StageConsolationFinals
	StageFinals
)

// Fixed label table for stored round ids.
var stageByRoundID = map[int]Stage{
	0: StageFirstRound,
	1: StageSecondRound,
	2: StageQuarterFinals,
	3: StageSemiFinals,
	4: StageConsolationFinals,
	5: StageFinals,
}

var stageTitles = map[Stage]string{
	StageFirstRound:        "1st Round",
	StageSecondRound:       "2nd Round",
	StageQuarterFinals:     "Quarter Finals",
	StageSemiFinals:        "Semi Finals",
	StageConsolationFinals: "Consolation Finals",
	StageFinals:            "Finals",
}

// StageFor maps a stored round id onto its stage. Ids outside the table
// resolve to StageUnknown.
func StageFor(roundID int) Stage {
	if stage, ok := stageByRoundID[roundID]; ok {
		return stage
	}
	return StageUnknown
}

func (s Stage) Known() bool {
	return s != StageUnknown
}

// Title returns the fixed label of a known stage and an empty string
// otherwise.
func (s Stage) Title() string {
	return stageTitles[s]
}

// RoundTitle is the display title for a round id. Unknown ids render as
// "Round <id>" so the bracket stays drawable.
func RoundTitle(roundID int) string {
	if stage := StageFor(roundID); stage.Known() {
		return stage.Title()
	}
	return fmt.Sprintf("Round %d", roundID)
}
