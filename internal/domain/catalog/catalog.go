package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Framework is the root of a questionnaire catalog. Loaded with its tree
// (Domains -> Gates -> Questions, each ordered by display order) it is the
// read-only input of the scoring engine.
type Framework struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null;column:name;uniqueIndex:idx_framework_name_version" json:"name"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	Version     string    `gorm:"not null;column:version;uniqueIndex:idx_framework_name_version" json:"version"`

	Domains []Domain `gorm:"foreignKey:FrameworkID" json:"domains,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Framework) TableName() string { return "frameworks" }

func (f *Framework) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

type Domain struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FrameworkID uuid.UUID `gorm:"type:uuid;not null;index;column:framework_id" json:"framework_id"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	Weight      float64   `gorm:"not null;column:weight" json:"weight"`
	Order       int       `gorm:"not null;column:display_order" json:"order"`

	Gates []Gate `gorm:"foreignKey:DomainID" json:"gates,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Domain) TableName() string { return "framework_domains" }

func (d *Domain) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

type Gate struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DomainID    uuid.UUID `gorm:"type:uuid;not null;index;column:domain_id" json:"domain_id"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	Order       int       `gorm:"not null;column:display_order" json:"order"`

	Questions []Question `gorm:"foreignKey:GateID" json:"questions,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Gate) TableName() string { return "framework_gates" }

func (g *Gate) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

type Question struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GateID   uuid.UUID `gorm:"type:uuid;not null;index;column:gate_id" json:"gate_id"`
	Text     string    `gorm:"not null;column:question_text" json:"question_text"`
	Guidance string    `gorm:"column:guidance" json:"guidance,omitempty"`
	Order    int       `gorm:"not null;column:display_order" json:"order"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Question) TableName() string { return "framework_questions" }

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// QuestionIDs returns every question id in catalog order.
func (f *Framework) QuestionIDs() []uuid.UUID {
	if f == nil {
		return nil
	}
	out := make([]uuid.UUID, 0)
	for _, d := range f.Domains {
		for _, g := range d.Gates {
			for _, q := range g.Questions {
				out = append(out, q.ID)
			}
		}
	}
	return out
}

// QuestionSet indexes every question id of the tree.
func (f *Framework) QuestionSet() map[uuid.UUID]struct{} {
	ids := f.QuestionIDs()
	out := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}
