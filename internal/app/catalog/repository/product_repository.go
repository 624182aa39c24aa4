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

type productRepository struct {
	collection *mongo.Collection
}

// NewProductRepository создает новый репозиторий товаров.
// Автоматически создает индекс по category для выборки products-by-category.
func NewProductRepository(db *mongo.Database) ProductRepository {
	collection := db.Collection("products")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "category", Value: 1}},
		Options: options.Index().SetName("category_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		fmt.Printf("Warning: failed to create index on category: %v\n", err)
	}

	return &productRepository{collection: collection}
}

// Create создает новый товар в MongoDB
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpInsert, "products")
	result, err := r.collection.InsertOne(ctx, product)
	timer.ObserveDuration()
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpInsert)
		return fmt.Errorf("failed to create product: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}

	return nil
}

// GetAll получает все товары в нативном порядке хранилища
func (r *productRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpFind, "products")
	cursor, err := r.collection.Find(ctx, bson.M{})
	timer.ObserveDuration()
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []entity.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

// GetByID получает товар по hex-представлению ObjectID
func (r *productRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	var product entity.Product
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpFind, "products")
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&product)
	timer.ObserveDuration()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

// GetByCategory получает товары с точным совпадением поля category.
// Использует индекс category_idx; без сворачивания регистра и подстрок.
func (r *productRepository) GetByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpFind, "products")
	cursor, err := r.collection.Find(ctx, bson.M{"category": category})
	timer.ObserveDuration()
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return nil, fmt.Errorf("failed to find products by category: %w", err)
	}
	defer cursor.Close(ctx)

	var products []entity.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

// Update перезаписывает поля товара одним атомарным $set.
// Слияние "какие слоты изображений менять" уже выполнено в service layer,
// поэтому неудачное обновление не оставляет частично записанного документа.
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	product.UpdatedAt = time.Now()

	filter := bson.M{"_id": product.ID}
	update := bson.M{
		"$set": bson.M{
			"category":    product.Category,
			"name":        product.Name,
			"description": product.Description,
			"price":       product.Price,
			"img1":        product.Img1,
			"img2":        product.Img2,
			"img3":        product.Img3,
			"updatedAt":   product.UpdatedAt,
		},
	}

	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpUpdate, "products")
	result, err := r.collection.UpdateOne(ctx, filter, update)
	timer.ObserveDuration()
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpUpdate)
		return fmt.Errorf("failed to update product: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete удаляет товар из MongoDB
func (r *productRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpDelete, "products")
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	timer.ObserveDuration()
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpDelete)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrProductNotFound
	}

	return nil
}
