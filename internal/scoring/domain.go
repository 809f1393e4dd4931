package scoring

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/maturity-backend/internal/domain/assessment"
	"github.com/yungbote/maturity-backend/internal/domain/catalog"
)

const (
	MaxScore          = 5
	StrengthThreshold = 4
	GapThreshold      = 2

	maxDomainHighlights = 5
	questionTextLimit   = 50
)

type DomainResult struct {
	DomainID      uuid.UUID
	Score         float64
	MaturityLevel Level
	Strengths     []string
	Gaps          []string
	Weight        float64
}

// ComputeDomainScores scores every domain of fw. Unanswered questions stay in
// the denominator, so they weigh exactly like a zero. Answers to questions
// outside fw are ignored.
func ComputeDomainScores(fw *catalog.Framework, answers []*assessment.Answer) map[uuid.UUID]DomainResult {
	out := make(map[uuid.UUID]DomainResult)
	if fw == nil {
		return out
	}

	byQuestion := make(map[uuid.UUID]int, len(answers))
	for _, a := range answers {
		if a == nil {
			continue
		}
		byQuestion[a.QuestionID] = a.Score
	}

	for _, d := range fw.Domains {
		res := DomainResult{
			DomainID:      d.ID,
			MaturityLevel: LevelInitial,
			Strengths:     []string{},
			Gaps:          []string{},
			Weight:        d.Weight,
		}

		questions := 0
		answered := 0
		rawTotal := 0
		for _, g := range d.Gates {
			for _, q := range g.Questions {
				questions++
				score, ok := byQuestion[q.ID]
				if !ok {
					continue
				}
				answered++
				rawTotal += score
				switch {
				case score >= StrengthThreshold:
					if len(res.Strengths) < maxDomainHighlights {
						res.Strengths = append(res.Strengths, highlight(g.Name, q.Text, score))
					}
				case score <= GapThreshold:
					if len(res.Gaps) < maxDomainHighlights {
						res.Gaps = append(res.Gaps, highlight(g.Name, q.Text, score))
					}
				}
			}
		}

		if answered > 0 {
			maxPossible := questions * MaxScore
			if maxPossible > 0 {
				res.Score = round2(float64(rawTotal) / float64(maxPossible) * 100)
			}
			res.MaturityLevel = MaturityLevel(res.Score)
		}
		out[d.ID] = res
	}
	return out
}

func highlight(gateName, questionText string, score int) string {
	return fmt.Sprintf("%s - %s...: Score %d/5", gateName, truncate(questionText, questionTextLimit), score)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
