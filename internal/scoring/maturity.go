package scoring

import "math"

type Level int

const (
	LevelInitial Level = iota + 1
	LevelDeveloping
	LevelDefined
	LevelManaged
	LevelOptimizing
)

// MaturityLevel maps a percentage to its band. Bands are inclusive on the
// upper edge: 20.0 is Initial, 20.01 is Developing. NaN maps to Initial.
func MaturityLevel(score float64) Level {
	switch {
	case math.IsNaN(score), score <= 20:
		return LevelInitial
	case score <= 40:
		return LevelDeveloping
	case score <= 60:
		return LevelDefined
	case score <= 80:
		return LevelManaged
	default:
		return LevelOptimizing
	}
}

var (
	levelNames = [...]string{
		LevelInitial:    "Initial",
		LevelDeveloping: "Developing",
		LevelDefined:    "Defined",
		LevelManaged:    "Managed",
		LevelOptimizing: "Optimizing",
	}
	levelDescriptions = [...]string{
		LevelInitial:    "Ad-hoc, manual processes",
		LevelDeveloping: "Some automation, inconsistent",
		LevelDefined:    "Standardized, documented",
		LevelManaged:    "Metrics-driven, comprehensive automation",
		LevelOptimizing: "Industry-leading, continuous improvement",
	}
)

func (l Level) Valid() bool {
	return l >= LevelInitial && l <= LevelOptimizing
}

func (l Level) Name() string {
	if !l.Valid() {
		return "Unknown"
	}
	return levelNames[l]
}

func (l Level) Description() string {
	return LevelDescription(int(l))
}

// LevelDescription never fails; levels outside 1..5 read "Unknown".
func LevelDescription(level int) string {
	if l := Level(level); l.Valid() {
		return levelDescriptions[l]
	}
	return "Unknown"
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
