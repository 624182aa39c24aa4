package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ksscientifique/internal/app/catalog/entity"
	"ksscientifique/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const serviceName = "catalog-admin"

type categoryRepository struct {
	collection *mongo.Collection
}

// NewCategoryRepository создает новый репозиторий категорий.
// Автоматически создает индекс по name для выборок списка.
func NewCategoryRepository(db *mongo.Database) CategoryRepository {
	collection := db.Collection("categories")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetName("name_idx"),
	}

	// Ошибку не пробрасываем - индекс может уже существовать
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		fmt.Printf("Warning: failed to create index on name: %v\n", err)
	}

	return &categoryRepository{collection: collection}
}

// Create создает новую категорию в MongoDB.
// Временные метки createdAt/updatedAt управляются репозиторием.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt

	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpInsert, "categories")
	result, err := r.collection.InsertOne(ctx, category)
	timer.ObserveDuration()
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpInsert)
		return fmt.Errorf("failed to create category: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		category.ID = oid
	}

	return nil
}

// GetAll получает все категории в нативном порядке хранилища
func (r *categoryRepository) GetAll(ctx context.Context) ([]entity.Category, error) {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpFind, "categories")
	cursor, err := r.collection.Find(ctx, bson.M{})
	timer.ObserveDuration()
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []entity.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	return categories, nil
}

// GetByID получает категорию по hex-представлению ObjectID
func (r *categoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	var category entity.Category
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpFind, "categories")
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&category)
	timer.ObserveDuration()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &category, nil
}

// Update перезаписывает name и img категории одним атомарным $set
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	category.UpdatedAt = time.Now()

	filter := bson.M{"_id": category.ID}
	update := bson.M{
		"$set": bson.M{
			"name":      category.Name,
			"img":       category.Img,
			"updatedAt": category.UpdatedAt,
		},
	}

	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpUpdate, "categories")
	result, err := r.collection.UpdateOne(ctx, filter, update)
	timer.ObserveDuration()
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpUpdate)
		return fmt.Errorf("failed to update category: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

// Delete удаляет категорию. Товары, ссылающиеся на её имя, не затрагиваются
func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpDelete, "categories")
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	timer.ObserveDuration()
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpDelete)
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrCategoryNotFound
	}

	return nil
}
