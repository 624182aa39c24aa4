package repository

import (
	"context"
	"errors"

	"ksscientifique/internal/app/catalog/entity"
)

var (
	// Стандартные ошибки репозиториев для обработки в service layer
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidID        = errors.New("invalid document id")
)

// CategoryRepository определяет методы для работы с категориями в MongoDB
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetAll(ctx context.Context) ([]entity.Category, error)
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
}

// ProductRepository определяет методы для работы с товарами в MongoDB
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetAll(ctx context.Context) ([]entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCategory(ctx context.Context, category string) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
}
