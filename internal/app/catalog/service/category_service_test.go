package service

import (
	"context"
	"errors"
	"testing"

	"ksscientifique/internal/app/catalog/entity"
	"ksscientifique/internal/app/catalog/repository"
	"ksscientifique/internal/app/catalog/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

func TestCreateCategory_Success(t *testing.T) {
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)
	svc := NewCategoryService(categoryRepo, cache)

	ctx := context.Background()
	req := &entity.CreateCategoryRequest{Name: "Microscopes"}
	req.Image.Data = pngBytes
	req.Image.MIMEType = "image/png"

	categoryRepo.On("Create", ctx, mock.AnythingOfType("*entity.Category")).Return(nil).Run(func(args mock.Arguments) {
		category := args.Get(1).(*entity.Category)
		category.ID = primitive.NewObjectID()
	})
	cache.On("DeleteCategories", ctx).Return(nil)

	result, err := svc.Create(ctx, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "Microscopes", result.Name)
	assert.Equal(t, pngBytes, result.Img.Data)
	assert.Equal(t, "image/png", result.Img.ContentType)
	cache.AssertCalled(t, "DeleteCategories", ctx)
}

func TestCreateCategory_MissingName(t *testing.T) {
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)
	svc := NewCategoryService(categoryRepo, cache)

	req := &entity.CreateCategoryRequest{}
	req.Image.Data = pngBytes

	result, err := svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, result)
	categoryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateCategory_MissingImage(t *testing.T) {
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)
	svc := NewCategoryService(categoryRepo, cache)

	req := &entity.CreateCategoryRequest{Name: "Microscopes"}

	result, err := svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, result)
	categoryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateCategory_CacheErrorIgnored(t *testing.T) {
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)
	svc := NewCategoryService(categoryRepo, cache)

	ctx := context.Background()
	req := &entity.CreateCategoryRequest{Name: "Microscopes"}
	req.Image.Data = pngBytes

	categoryRepo.On("Create", ctx, mock.Anything).Return(nil)
	cache.On("DeleteCategories", ctx).Return(errors.New("redis down"))

	result, err := svc.Create(ctx, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
}

func TestGetAllCategories_CacheHit(t *testing.T) {
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)
	svc := NewCategoryService(categoryRepo, cache)

	ctx := context.Background()
	cached := []entity.Category{
		{ID: primitive.NewObjectID(), Name: "Microscopes"},
		{ID: primitive.NewObjectID(), Name: "Glassware"},
	}

	cache.On("GetCategories", ctx).Return(cached, nil)

	result, err := svc.GetAll(ctx)

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	categoryRepo.AssertNotCalled(t, "GetAll", mock.Anything)
}

func TestGetAllCategories_CacheMiss(t *testing.T) {
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)
	svc := NewCategoryService(categoryRepo, cache)

	ctx := context.Background()
	stored := []entity.Category{{ID: primitive.NewObjectID(), Name: "Microscopes"}}

	cache.On("GetCategories", ctx).Return(nil, nil)
	categoryRepo.On("GetAll", ctx).Return(stored, nil)
	cache.On("SetCategories", ctx, stored, categoryCacheTTL).Return(nil)

	result, err := svc.GetAll(ctx)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	cache.AssertCalled(t, "SetCategories", ctx, stored, categoryCacheTTL)
}

func TestGetAllCategories_CacheReadErrorFallsThrough(t *testing.T) {
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)
	svc := NewCategoryService(categoryRepo, cache)

	ctx := context.Background()
	stored := []entity.Category{{ID: primitive.NewObjectID(), Name: "Microscopes"}}

	cache.On("GetCategories", ctx).Return(nil, errors.New("redis down"))
	categoryRepo.On("GetAll", ctx).Return(stored, nil)
	cache.On("SetCategories", ctx, stored, categoryCacheTTL).Return(errors.New("redis down"))

	result, err := svc.GetAll(ctx)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestGetCategory_Success(t *testing.T) {
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)
	svc := NewCategoryService(categoryRepo, cache)

	ctx := context.Background()
	id := primitive.NewObjectID()
	stored := &entity.Category{ID: id, Name: "Microscopes"}

	categoryRepo.On("GetByID", ctx, id.Hex()).Return(stored, nil)

	result, err := svc.GetByID(ctx, id.Hex())

	assert.NoError(t, err)
	assert.Equal(t, "Microscopes", result.Name)
}

func TestGetCategory_NotFound(t *testing.T) {
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)
	svc := NewCategoryService(categoryRepo, cache)

	ctx := context.Background()
	categoryRepo.On("GetByID", ctx, mock.Anything).Return(nil, repository.ErrCategoryNotFound)

	result, err := svc.GetByID(ctx, primitive.NewObjectID().Hex())

	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.Nil(t, result)
}

func TestGetCategory_InvalidID(t *testing.T) {
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)
	svc := NewCategoryService(categoryRepo, cache)

	ctx := context.Background()
	categoryRepo.On("GetByID", ctx, "not-an-object-id").Return(nil, repository.ErrInvalidID)

	result, err := svc.GetByID(ctx, "not-an-object-id")

	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.Nil(t, result)
}

func TestUpdateCategory_KeepsImageWithoutNewData(t *testing.T) {
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)
	svc := NewCategoryService(categoryRepo, cache)

	ctx := context.Background()
	id := primitive.NewObjectID()
	stored := &entity.Category{
		ID:   id,
		Name: "Microscopes",
		Img:  entity.Image{Data: pngBytes, ContentType: "image/png"},
	}

	categoryRepo.On("GetByID", ctx, id.Hex()).Return(stored, nil)
	categoryRepo.On("Update", ctx, mock.AnythingOfType("*entity.Category")).Return(nil)
	cache.On("DeleteCategories", ctx).Return(nil)

	req := &entity.UpdateCategoryRequest{Name: "Optics"}
	result, err := svc.Update(ctx, id.Hex(), req)

	assert.NoError(t, err)
	assert.Equal(t, "Optics", result.Name)
	assert.Equal(t, pngBytes, result.Img.Data)
	assert.Equal(t, "image/png", result.Img.ContentType)
}

func TestUpdateCategory_ReplacesImage(t *testing.T) {
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)
	svc := NewCategoryService(categoryRepo, cache)

	ctx := context.Background()
	id := primitive.NewObjectID()
	stored := &entity.Category{
		ID:   id,
		Name: "Microscopes",
		Img:  entity.Image{Data: []byte("old"), ContentType: "image/jpeg"},
	}

	categoryRepo.On("GetByID", ctx, id.Hex()).Return(stored, nil)
	categoryRepo.On("Update", ctx, mock.Anything).Return(nil)
	cache.On("DeleteCategories", ctx).Return(nil)

	req := &entity.UpdateCategoryRequest{Name: "Microscopes"}
	req.Image.Data = pngBytes
	req.Image.MIMEType = "image/png"

	result, err := svc.Update(ctx, id.Hex(), req)

	assert.NoError(t, err)
	assert.Equal(t, pngBytes, result.Img.Data)
	assert.Equal(t, "image/png", result.Img.ContentType)
}

func TestUpdateCategory_MissingName(t *testing.T) {
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)
	svc := NewCategoryService(categoryRepo, cache)

	result, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), &entity.UpdateCategoryRequest{})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, result)
	categoryRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUpdateCategory_NotFound(t *testing.T) {
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)
	svc := NewCategoryService(categoryRepo, cache)

	ctx := context.Background()
	categoryRepo.On("GetByID", ctx, mock.Anything).Return(nil, repository.ErrCategoryNotFound)

	result, err := svc.Update(ctx, primitive.NewObjectID().Hex(), &entity.UpdateCategoryRequest{Name: "Optics"})

	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.Nil(t, result)
}

func TestDeleteCategory_Success(t *testing.T) {
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)
	svc := NewCategoryService(categoryRepo, cache)

	ctx := context.Background()
	id := primitive.NewObjectID().Hex()

	categoryRepo.On("Delete", ctx, id).Return(nil)
	cache.On("DeleteCategories", ctx).Return(nil)

	err := svc.Delete(ctx, id)

	assert.NoError(t, err)
	cache.AssertCalled(t, "DeleteCategories", ctx)
}

func TestDeleteCategory_NotFound(t *testing.T) {
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)
	svc := NewCategoryService(categoryRepo, cache)

	ctx := context.Background()
	id := primitive.NewObjectID().Hex()

	categoryRepo.On("Delete", ctx, id).Return(repository.ErrCategoryNotFound)

	err := svc.Delete(ctx, id)

	assert.ErrorIs(t, err, ErrCategoryNotFound)
	cache.AssertNotCalled(t, "DeleteCategories", mock.Anything)
}
