package postgres

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/survey-api/internal/domain/entity"
	apperrors "github.com/yourusername/survey-api/internal/pkg/errors"
)

// QuestionSetRepo implements repository.QuestionSetRepository
type QuestionSetRepo struct {
	db *gorm.DB
}

// NewQuestionSetRepo creates a question set repository
func NewQuestionSetRepo(db *gorm.DB) *QuestionSetRepo {
	return &QuestionSetRepo{db: db}
}

// CreateSet inserts an empty set
func (r *QuestionSetRepo) CreateSet(set *entity.QuestionSet) error {
	return mapError(r.db.Omit(clause.Associations).Create(set).Error)
}

// GetWithOrders loads the set with its active orders
func (r *QuestionSetRepo) GetWithOrders(setID uint) (*entity.QuestionSet, error) {
	var set entity.QuestionSet
	err := r.db.
		Preload("Orders", byPosition).
		Preload("Orders.Question").
		Preload("Orders.Question.Options", byID).
		First(&set, setID).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &set, nil
}

// SoftDeleteSets soft-deletes the orders of the sets, then the sets
func (r *QuestionSetRepo) SoftDeleteSets(setIDs []uint) error {
	if len(setIDs) == 0 {
		return nil
	}
	if err := r.db.Where("question_set_id IN ?", setIDs).Delete(&entity.QuestionOrder{}).Error; err != nil {
		return err
	}
	return softDeleteByIDs(r.db, &entity.QuestionSet{}, setIDs)
}

// CreateQuestion inserts the question and its options in one call
func (r *QuestionSetRepo) CreateQuestion(q *entity.Question) error {
	return mapError(r.db.Create(q).Error)
}

// CreateOrder inserts an order; the question must already exist
func (r *QuestionSetRepo) CreateOrder(order *entity.QuestionOrder) error {
	return mapError(r.db.Omit(clause.Associations).Create(order).Error)
}

// UpdateOrderPosition moves an active order
func (r *QuestionSetRepo) UpdateOrderPosition(orderID uint, position int) error {
	result := r.db.Model(&entity.QuestionOrder{}).
		Where("id = ?", orderID).
		Update("position", position)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SoftDeleteOrders marks orders deleted
func (r *QuestionSetRepo) SoftDeleteOrders(orderIDs []uint) error {
	return softDeleteByIDs(r.db, &entity.QuestionOrder{}, orderIDs)
}

// OrderIDs returns every order id of the set, including soft-deleted ones
func (r *QuestionSetRepo) OrderIDs(setID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Unscoped().
		Model(&entity.QuestionOrder{}).
		Where("question_set_id = ?", setID).
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}
