package entity

// QuestionSet groups QuestionOrders. It has no meaning outside the window that references it.
type QuestionSet struct {
	Base
	Orders []QuestionOrder `gorm:"foreignKey:QuestionSetID" json:"orders,omitempty"`
}

// TableName returns the GORM table name
func (QuestionSet) TableName() string {
	return "question_sets"
}

// ActiveOrders returns the loaded orders whose soft-delete marker is unset.
func (s *QuestionSet) ActiveOrders() []QuestionOrder {
	active := make([]QuestionOrder, 0, len(s.Orders))
	for _, o := range s.Orders {
		if o.IsActive() {
			active = append(active, o)
		}
	}
	return active
}

// QuestionOrder places a Question at a position inside exactly one QuestionSet.
// Positions are meant to be unique among a set's active orders but this is not enforced here.
type QuestionOrder struct {
	Base
	Position      int       `gorm:"not null" json:"position"`
	QuestionID    uint      `gorm:"not null;index" json:"question_id"`
	Question      *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	QuestionSetID uint      `gorm:"not null;index" json:"question_set_id"`
}

// TableName returns the GORM table name
func (QuestionOrder) TableName() string {
	return "question_orders"
}
