package repositories

import (
	"context"
	"errors"
	"gorm.io/gorm"

	"flexpay/internal/models/db_models"
)

type OrderRepositoryInterface interface {
	GetByNumber(ctx context.Context, number string) (*db_models.Order, error)
}

func NewOrderRepository(db *gorm.DB) OrderRepositoryInterface {
	return &OrderRepository{db: db}
}

type OrderRepository struct {
	db *gorm.DB
}

func (o OrderRepository) GetByNumber(ctx context.Context, number string) (*db_models.Order, error) {

	var order db_models.Order
	err := o.db.WithContext(ctx).Where("number = ?", number).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}
	return &order, nil
}
