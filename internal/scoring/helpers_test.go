package scoring

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/maturity-backend/internal/domain/assessment"
	"github.com/yungbote/maturity-backend/internal/domain/catalog"
)

type domainShape struct {
	name      string
	weight    float64
	questions []int // questions per gate
}

func buildFramework(shapes ...domainShape) *catalog.Framework {
	fw := &catalog.Framework{ID: uuid.New(), Name: "fw", Version: "1"}
	for di, s := range shapes {
		d := catalog.Domain{ID: uuid.New(), FrameworkID: fw.ID, Name: s.name, Weight: s.weight, Order: di}
		for gi, n := range s.questions {
			g := catalog.Gate{ID: uuid.New(), DomainID: d.ID, Name: fmt.Sprintf("%s gate %d", s.name, gi+1), Order: gi}
			for qi := 0; qi < n; qi++ {
				g.Questions = append(g.Questions, catalog.Question{
					ID:     uuid.New(),
					GateID: g.ID,
					Text:   fmt.Sprintf("Question %d of %s", qi+1, g.Name),
					Order:  qi,
				})
			}
			d.Gates = append(d.Gates, g)
		}
		fw.Domains = append(fw.Domains, d)
	}
	return fw
}

func questionsOf(d catalog.Domain) []catalog.Question {
	var out []catalog.Question
	for _, g := range d.Gates {
		out = append(out, g.Questions...)
	}
	return out
}

func answer(q catalog.Question, score int) *assessment.Answer {
	return &assessment.Answer{ID: uuid.New(), QuestionID: q.ID, Score: score}
}
