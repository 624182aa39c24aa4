package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ksscientifique/internal/app/catalog/entity"
	"ksscientifique/internal/app/catalog/repository"
	"ksscientifique/internal/app/catalog/util"
	"ksscientifique/pkg/logger"
	"ksscientifique/pkg/metrics"
)

const (
	serviceName       = "catalog-admin"
	categoryCacheTTL  = time.Hour
	categoryKeyPrefix = "categories"
)

// CategoryService обрабатывает бизнес-логику категорий каталога.
// Координирует репозиторий MongoDB и Redis кеш списка категорий.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	cache        util.CategoryCache
}

// NewCategoryService создает новый сервис категорий с внедрением зависимостей
func NewCategoryService(categoryRepo repository.CategoryRepository, cache util.CategoryCache) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

// Create создает новую категорию и инвалидирует кеш.
// Инварианты контракта проверяются до обращения к хранилищу:
// имя непустое, данные изображения присутствуют.
func (s *CategoryService) Create(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error) {
	if req.Name == "" || !req.Image.Present() {
		return nil, fmt.Errorf("%w: Send all required fields: name, img", ErrValidation)
	}

	img, err := normalizeImage(req.Image)
	if err != nil {
		return nil, err
	}

	category := &entity.Category{
		Name: req.Name,
		Img:  img,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	metrics.CategoriesCreated.Inc()

	// Категория уже создана, проблемы с кешем не критичны
	if err := s.cache.DeleteCategories(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate categories cache")
	}

	return category, nil
}

// GetAll получает все категории с кешированием в Redis.
// Сначала проверяет кеш, при промахе загружает из MongoDB и кеширует на час.
func (s *CategoryService) GetAll(ctx context.Context) ([]entity.Category, error) {
	categories, err := s.cache.GetCategories(ctx)
	if err == nil && categories != nil {
		metrics.RecordCacheHit(serviceName, categoryKeyPrefix)
		return categories, nil
	}
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read categories cache")
	}
	metrics.RecordCacheMiss(serviceName, categoryKeyPrefix)

	categories, err = s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	if err := s.cache.SetCategories(ctx, categories, categoryCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("failed to cache categories")
	}

	return categories, nil
}

// GetByID получает категорию по ID, минуя кеш
func (s *CategoryService) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

// Update обновляет категорию и инвалидирует кеш.
// Имя перезаписывается всегда; слот изображения - только если в запросе
// действительно пришли новые данные (файл либо непустое base64-поле).
// Без новых данных прежние байты изображения сохраняются без изменений.
func (s *CategoryService) Update(ctx context.Context, id string, req *entity.UpdateCategoryRequest) (*entity.Category, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: Send all required fields: name", ErrValidation)
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	category.Name = req.Name

	if req.Image.Present() {
		img, err := normalizeImage(req.Image)
		if err != nil {
			return nil, err
		}
		category.Img = img
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	if err := s.cache.DeleteCategories(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate categories cache")
	}

	return category, nil
}

// Delete удаляет категорию и инвалидирует кеш.
// Товары, ссылающиеся на имя категории, не затрагиваются (no cascading deletes).
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if err := s.cache.DeleteCategories(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate categories cache")
	}

	return nil
}
