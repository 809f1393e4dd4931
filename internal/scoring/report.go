package scoring

import (
	"github.com/google/uuid"

	"github.com/yungbote/maturity-backend/internal/domain/assessment"
	"github.com/yungbote/maturity-backend/internal/domain/catalog"
)

const (
	maxReportHighlights  = 10
	maxRecommendations   = 5
	recommendationPrefix = "Address identified gap: "
	unknownDomainName    = "Unknown Domain"
	unknownGateName      = "Unknown Gate"
)

type MaturityBlock struct {
	Level       int    `json:"level"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type DomainBreakdown struct {
	DomainID      uuid.UUID `json:"domain_id"`
	Domain        string    `json:"domain"`
	Weight        float64   `json:"weight"`
	Score         float64   `json:"score"`
	MaturityLevel int       `json:"maturity_level"`
	Strengths     []string  `json:"strengths"`
	Gaps          []string  `json:"gaps"`
}

type GateScore struct {
	GateID     uuid.UUID `json:"gate_id"`
	GateName   string    `json:"gate_name"`
	Score      float64   `json:"score"`
	MaxScore   float64   `json:"max_score"`
	Percentage float64   `json:"percentage"`
}

type Report struct {
	Assessment      *assessment.Assessment `json:"assessment"`
	MaturityLevel   MaturityBlock          `json:"maturity_level"`
	DomainBreakdown []DomainBreakdown      `json:"domain_breakdown"`
	GateScores      []GateScore            `json:"gate_scores"`
	TopStrengths    []string               `json:"top_strengths"`
	TopGaps         []string               `json:"top_gaps"`
	Recommendations []string               `json:"recommendations"`
}

// GenerateReport assembles the narrative view of a completed assessment from
// its stored domain scores. It does not check the assessment status; callers
// gate on that. Lookup misses fall back to placeholder names.
func GenerateReport(fw *catalog.Framework, a *assessment.Assessment, answers []*assessment.Answer, scores []*assessment.DomainScore) *Report {
	overall := 0.0
	if a != nil && a.OverallScore != nil {
		overall = *a.OverallScore
	}
	level := MaturityLevel(overall)

	rep := &Report{
		Assessment: a,
		MaturityLevel: MaturityBlock{
			Level:       int(level),
			Name:        level.Name(),
			Description: level.Description(),
		},
		DomainBreakdown: orderedBreakdown(fw, scores),
		GateScores:      gateScores(fw, answers),
		TopStrengths:    []string{},
		TopGaps:         []string{},
		Recommendations: []string{},
	}

	for _, b := range rep.DomainBreakdown {
		rep.TopStrengths = append(rep.TopStrengths, b.Strengths...)
		rep.TopGaps = append(rep.TopGaps, b.Gaps...)
	}
	for i, gap := range rep.TopGaps {
		if i == maxRecommendations {
			break
		}
		rep.Recommendations = append(rep.Recommendations, recommendationPrefix+gap)
	}
	if len(rep.TopStrengths) > maxReportHighlights {
		rep.TopStrengths = rep.TopStrengths[:maxReportHighlights]
	}
	if len(rep.TopGaps) > maxReportHighlights {
		rep.TopGaps = rep.TopGaps[:maxReportHighlights]
	}
	return rep
}

// orderedBreakdown lists stored scores in domain catalog order, then any
// score whose domain is no longer in the catalog, in stored order.
func orderedBreakdown(fw *catalog.Framework, scores []*assessment.DomainScore) []DomainBreakdown {
	byDomain := make(map[uuid.UUID]*assessment.DomainScore, len(scores))
	for _, ds := range scores {
		if ds == nil {
			continue
		}
		byDomain[ds.DomainID] = ds
	}

	out := make([]DomainBreakdown, 0, len(byDomain))
	seen := make(map[uuid.UUID]struct{}, len(byDomain))
	if fw != nil {
		for _, d := range fw.Domains {
			ds, ok := byDomain[d.ID]
			if !ok {
				continue
			}
			seen[d.ID] = struct{}{}
			out = append(out, breakdown(d.Name, d.Weight, ds))
		}
	}
	for _, ds := range scores {
		if ds == nil {
			continue
		}
		if _, ok := seen[ds.DomainID]; ok {
			continue
		}
		seen[ds.DomainID] = struct{}{}
		out = append(out, breakdown(unknownDomainName, 0, ds))
	}
	return out
}

func breakdown(name string, weight float64, ds *assessment.DomainScore) DomainBreakdown {
	strengths := []string(ds.Strengths)
	if strengths == nil {
		strengths = []string{}
	}
	gaps := []string(ds.Gaps)
	if gaps == nil {
		gaps = []string{}
	}
	return DomainBreakdown{
		DomainID:      ds.DomainID,
		Domain:        name,
		Weight:        weight,
		Score:         ds.Score,
		MaturityLevel: ds.MaturityLevel,
		Strengths:     strengths,
		Gaps:          gaps,
	}
}

type gateTally struct {
	total int
	count int
}

// gateScores sums answered questions per gate, independent of domain weights.
// Gates without answers are omitted.
func gateScores(fw *catalog.Framework, answers []*assessment.Answer) []GateScore {
	gateOf := make(map[uuid.UUID]uuid.UUID)
	order := make([]uuid.UUID, 0)
	names := make(map[uuid.UUID]string)
	if fw != nil {
		for _, d := range fw.Domains {
			for _, g := range d.Gates {
				order = append(order, g.ID)
				names[g.ID] = g.Name
				for _, q := range g.Questions {
					gateOf[q.ID] = g.ID
				}
			}
		}
	}

	tallies := make(map[uuid.UUID]*gateTally)
	unknown := &gateTally{}
	for _, a := range answers {
		if a == nil {
			continue
		}
		gid, ok := gateOf[a.QuestionID]
		if !ok {
			unknown.total += a.Score
			unknown.count++
			continue
		}
		t := tallies[gid]
		if t == nil {
			t = &gateTally{}
			tallies[gid] = t
		}
		t.total += a.Score
		t.count++
	}

	out := make([]GateScore, 0, len(tallies)+1)
	for _, gid := range order {
		if t := tallies[gid]; t != nil {
			out = append(out, gateScore(gid, names[gid], t))
		}
	}
	if unknown.count > 0 {
		out = append(out, gateScore(uuid.Nil, unknownGateName, unknown))
	}
	return out
}

func gateScore(id uuid.UUID, name string, t *gateTally) GateScore {
	maxScore := t.count * MaxScore
	pct := 0.0
	if maxScore > 0 {
		pct = round2(float64(t.total) / float64(maxScore) * 100)
	}
	return GateScore{
		GateID:     id,
		GateName:   name,
		Score:      float64(t.total),
		MaxScore:   float64(maxScore),
		Percentage: pct,
	}
}
