package processor

import (
	"context"
	"errors"
	"testing"
	"time"

	"ksscientifique/internal/app/catalog/entity"
	"ksscientifique/internal/app/catalog/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewCacheWarmer(t *testing.T) {
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)

	warmer := NewCacheWarmer(categoryRepo, cache)

	assert.NotNil(t, warmer)
	assert.NotNil(t, warmer.cron)
	assert.Empty(t, warmer.GetEntries())
}

func TestCacheWarmer_Start_WarmsImmediately(t *testing.T) {
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)
	warmer := NewCacheWarmer(categoryRepo, cache)

	ctx := context.Background()
	categories := []entity.Category{{ID: primitive.NewObjectID(), Name: "Microscopes"}}

	categoryRepo.On("GetAll", mock.Anything).Return(categories, nil)
	cache.On("SetCategories", mock.Anything, categories, warmCacheTTL).Return(nil)

	err := warmer.Start(ctx, "@hourly")

	assert.NoError(t, err)
	assert.Len(t, warmer.GetEntries(), 1)
	cache.AssertCalled(t, "SetCategories", mock.Anything, categories, warmCacheTTL)

	warmer.Stop()
}

func TestCacheWarmer_Start_InvalidSchedule(t *testing.T) {
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)
	warmer := NewCacheWarmer(categoryRepo, cache)

	err := warmer.Start(context.Background(), "not a schedule")

	assert.Error(t, err)
}

func TestCacheWarmer_Start_InitialWarmErrorContinues(t *testing.T) {
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)
	warmer := NewCacheWarmer(categoryRepo, cache)

	categoryRepo.On("GetAll", mock.Anything).Return(nil, errors.New("mongo down"))

	err := warmer.Start(context.Background(), "@hourly")

	assert.NoError(t, err)
	assert.Len(t, warmer.GetEntries(), 1)
	cache.AssertNotCalled(t, "SetCategories", mock.Anything, mock.Anything, mock.Anything)

	warmer.Stop()
}

func TestCacheWarmer_PeriodicExecution(t *testing.T) {
	categoryRepo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)
	warmer := NewCacheWarmer(categoryRepo, cache)

	categories := []entity.Category{{Name: "Glassware"}}
	categoryRepo.On("GetAll", mock.Anything).Return(categories, nil)
	cache.On("SetCategories", mock.Anything, categories, warmCacheTTL).Return(nil)

	err := warmer.Start(context.Background(), "@every 100ms")
	assert.NoError(t, err)

	time.Sleep(350 * time.Millisecond)
	warmer.Stop()

	// Минимум два вызова: стартовый прогрев плюс срабатывания по расписанию
	assert.GreaterOrEqual(t, len(categoryRepo.Calls), 2)
}
