package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ksscientifique/internal/app/catalog/entity"
	"ksscientifique/internal/app/catalog/repository"
	"ksscientifique/internal/app/catalog/util"
	"ksscientifique/pkg/logger"
	"ksscientifique/pkg/metrics"
)

// ProductService обрабатывает бизнес-логику товаров каталога.
// Координирует репозиторий MongoDB и Kafka producer событий о товарах.
type ProductService struct {
	productRepo repository.ProductRepository
	producer    util.MessagePublisher

	// requiredImages - сколько слотов изображений обязательны при создании (1..3),
	// валидация "все или ничего" по самому строгому из наблюдавшихся вариантов
	requiredImages int
	// legacyUpdate включает безусловную перезапись всех текстовых полей и цены
	// при обновлении (режим совместимости со старым контрактом)
	legacyUpdate bool
}

// NewProductService создает новый сервис товаров с внедрением зависимостей
func NewProductService(
	productRepo repository.ProductRepository,
	producer util.MessagePublisher,
	requiredImages int,
	legacyUpdate bool,
) *ProductService {
	if requiredImages < 1 || requiredImages > entity.ProductImageSlots {
		requiredImages = entity.ProductImageSlots
	}
	return &ProductService{
		productRepo:    productRepo,
		producer:       producer,
		requiredImages: requiredImages,
		legacyUpdate:   legacyUpdate,
	}
}

// Create создает новый товар.
// Текстовые поля и первые requiredImages слотов изображений обязательны;
// валидация выполняется целиком до обращения к хранилищу, частично
// заполненный документ не создаётся никогда.
func (s *ProductService) Create(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	if req.Name == "" || req.Category == "" || req.Description == "" {
		return nil, fmt.Errorf("%w: Send all required fields: name, category, description, price, img", ErrValidation)
	}
	for i := 0; i < s.requiredImages; i++ {
		if !req.Images[i].Present() {
			return nil, fmt.Errorf("%w: Send all required fields: name, category, description, price, img", ErrValidation)
		}
	}

	product := &entity.Product{
		Category:    req.Category,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}

	for i := 0; i < entity.ProductImageSlots; i++ {
		if !req.Images[i].Present() {
			continue
		}
		img, err := normalizeImage(req.Images[i])
		if err != nil {
			return nil, err
		}
		*product.ImageSlot(i) = img
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	metrics.ProductsCreated.Inc()
	s.publishProductEvent(ctx, "PRODUCT_CREATED", product)

	return product, nil
}

// GetAll получает все товары
func (s *ProductService) GetAll(ctx context.Context) ([]entity.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	return products, nil
}

// GetByID получает товар по ID
func (s *ProductService) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// GetByCategory получает товары с точным совпадением метки категории
func (s *ProductService) GetByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	products, err := s.productRepo.GetByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to get products by category: %w", err)
	}

	return products, nil
}

// Update обновляет товар.
// Непереданные текстовые поля и цена сохраняют прежние значения
// (в legacy-режиме перезаписываются безусловно, как в старом контракте).
// Каждый слот изображения перезаписывается независимо и только при наличии
// новых данных именно для этого слота; остальные слоты не меняются.
func (s *ProductService) Update(ctx context.Context, id string, req *entity.UpdateProductRequest) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if s.legacyUpdate {
		product.Name = req.Name
		product.Category = req.Category
		product.Description = req.Description
		product.Price = req.Price
	} else {
		if req.Name != "" {
			product.Name = req.Name
		}
		if req.Category != "" {
			product.Category = req.Category
		}
		if req.Description != "" {
			product.Description = req.Description
		}
		if req.HasPrice {
			product.Price = req.Price
		}
	}

	for i := 0; i < entity.ProductImageSlots; i++ {
		if !req.Images[i].Present() {
			continue
		}
		img, err := normalizeImage(req.Images[i])
		if err != nil {
			return nil, err
		}
		*product.ImageSlot(i) = img
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.publishProductEvent(ctx, "PRODUCT_UPDATED", product)

	return product, nil
}

// Delete удаляет товар
func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to get product: %w", err)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.publishProductEvent(ctx, "PRODUCT_DELETED", product)

	return nil
}

// publishProductEvent отправляет событие о товаре в Kafka.
// Key = id товара для партиционирования: события одного товара сохраняют порядок.
// Ошибки отправки логируются, но не прерывают основную операцию.
func (s *ProductService) publishProductEvent(ctx context.Context, eventType string, product *entity.Product) {
	event := entity.ProductEvent{
		EventType: eventType,
		ProductID: product.ID.Hex(),
		Name:      product.Name,
		Category:  product.Category,
		Price:     product.Price,
		Timestamp: time.Now(),
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		logger.Warn().Err(err).Str("event_type", eventType).Msg("failed to marshal product event")
		return
	}

	if err := s.producer.PublishMessage(ctx, event.ProductID, eventData); err != nil {
		logger.Warn().Err(err).Str("event_type", eventType).Msg("failed to publish product event")
	}
}
