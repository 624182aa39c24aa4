package service

import (
	"context"

	"ksscientifique/internal/app/catalog/entity"
)

type CategoryServiceInterface interface {
	Create(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error)
	GetAll(ctx context.Context) ([]entity.Category, error)
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, id string, req *entity.UpdateCategoryRequest) (*entity.Category, error)
	Delete(ctx context.Context, id string) error
}

type ProductServiceInterface interface {
	Create(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error)
	GetAll(ctx context.Context) ([]entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCategory(ctx context.Context, category string) ([]entity.Product, error)
	Update(ctx context.Context, id string, req *entity.UpdateProductRequest) (*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
