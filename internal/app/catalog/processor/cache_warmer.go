package processor

import (
	"context"
	"time"

	"ksscientifique/internal/app/catalog/repository"
	"ksscientifique/internal/app/catalog/util"
	"ksscientifique/pkg/logger"

	"github.com/robfig/cron/v3"
)

const warmCacheTTL = time.Hour

// CacheWarmer периодически прогревает Redis-кеш списка категорий,
// чтобы после инвалидации или рестарта Redis первый запрос витрины
// не упирался в MongoDB.
type CacheWarmer struct {
	cron         *cron.Cron
	categoryRepo repository.CategoryRepository
	cache        util.CategoryCache
}

func NewCacheWarmer(categoryRepo repository.CategoryRepository, cache util.CategoryCache) *CacheWarmer {
	return &CacheWarmer{
		cron:         cron.New(),
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

// Start регистрирует задачу прогрева по расписанию и сразу выполняет
// первый прогрев. Ошибка первого прогрева не мешает запуску.
func (w *CacheWarmer) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("starting categories cache warmer")

	_, err := w.cron.AddFunc(schedule, func() {
		if err := w.warm(ctx); err != nil {
			logger.Error().Err(err).Msg("failed to warm categories cache")
		}
	})
	if err != nil {
		return err
	}

	w.cron.Start()

	if err := w.warm(ctx); err != nil {
		logger.Warn().Err(err).Msg("initial categories cache warm failed")
	}

	return nil
}

// Stop останавливает планировщик и дожидается завершения текущей задачи
func (w *CacheWarmer) Stop() {
	stopCtx := w.cron.Stop()
	<-stopCtx.Done()
	logger.Info().Msg("categories cache warmer stopped")
}

func (w *CacheWarmer) GetEntries() []cron.Entry {
	return w.cron.Entries()
}

func (w *CacheWarmer) warm(ctx context.Context) error {
	categories, err := w.categoryRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	return w.cache.SetCategories(ctx, categories, warmCacheTTL)
}
