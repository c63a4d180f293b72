package entity

import (
	"time"

	"gorm.io/gorm"
)

// Base holds the identity, audit timestamps and soft-delete marker shared by all rows.
type Base struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Lifecycle is either Active or Deleted.
type Lifecycle interface {
	isLifecycle()
}

// Active marks a row whose soft-delete marker is unset.
type Active struct{}

// Deleted marks a soft-deleted row.
type Deleted struct {
	At time.Time
}

func (Active) isLifecycle()  {}
func (Deleted) isLifecycle() {}

// Lifecycle converts the nullable soft-delete column into its tagged state.
func (b Base) Lifecycle() Lifecycle {
	if b.DeletedAt.Valid {
		return Deleted{At: b.DeletedAt.Time}
	}
	return Active{}
}

// IsActive reports whether the row has not been soft-deleted.
func (b Base) IsActive() bool {
	_, ok := b.Lifecycle().(Active)
	return ok
}

// IsPersisted reports whether the row has been assigned an identity by the store.
func (b Base) IsPersisted() bool {
	return b.ID != 0
}

// Models lists every persisted entity in dependency order.
func Models() []interface{} {
	return []interface{}{
		&Programme{}, &Class{}, &Person{}, &ClassPerson{},
		&Question{}, &Option{}, &QuestionSet{}, &QuestionOrder{},
		&Questionnaire{}, &QuestionnaireWindow{},
		&ProgrammeQuestionnaire{}, &ClassQuestionnaire{},
		&Attempt{}, &Answer{},
	}
}
