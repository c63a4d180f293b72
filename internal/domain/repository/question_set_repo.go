package repository

import (
	"github.com/yourusername/survey-api/internal/domain/entity"
)

// QuestionSetRepository persists question sets, questions and question orders.
type QuestionSetRepository interface {
	CreateSet(set *entity.QuestionSet) error
	// GetWithOrders loads a set with its active orders, their questions and options.
	GetWithOrders(setID uint) (*entity.QuestionSet, error)
	// SoftDeleteSets soft-deletes the sets and all of their orders.
	SoftDeleteSets(setIDs []uint) error

	// CreateQuestion inserts the question together with its options.
	CreateQuestion(q *entity.Question) error
	CreateOrder(order *entity.QuestionOrder) error
	UpdateOrderPosition(orderID uint, position int) error
	SoftDeleteOrders(orderIDs []uint) error
	// OrderIDs returns the ids of every order ever placed in the set, soft-deleted ones included.
	OrderIDs(setID uint) ([]uint, error)
}
