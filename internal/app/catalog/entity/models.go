package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image - встроенное изображение документа: бинарные данные вместе с MIME-типом.
// Заполненный слот всегда содержит и data, и contentType.
// Поле data в JSON сериализуется как base64 (стандартное поведение []byte),
// поэтому все read-пути отдают изображения в одном и том же виде.
type Image struct {
	Data        []byte `json:"data" bson:"data"`
	ContentType string `json:"contentType" bson:"contentType"`
}

// IsZero сообщает, что слот изображения не заполнен
func (i Image) IsZero() bool {
	return len(i.Data) == 0 && i.ContentType == ""
}

// Category представляет категорию каталога
// Имена bson-полей совпадают с документами исходной базы (img.data, img.contentType, createdAt)
type Category struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Img       Image              `json:"img" bson:"img"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Product представляет товар каталога с одним-тремя слотами изображений
type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Category    string             `json:"category" bson:"category"` // Ссылка на имя категории по значению, без FK
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Price       float64            `json:"price" bson:"price"`
	Img1        Image              `json:"img1" bson:"img1"`
	Img2        Image              `json:"img2" bson:"img2"`
	Img3        Image              `json:"img3" bson:"img3"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ImageSlot возвращает указатель на слот изображения по индексу 0..2
func (p *Product) ImageSlot(i int) *Image {
	switch i {
	case 0:
		return &p.Img1
	case 1:
		return &p.Img2
	default:
		return &p.Img3
	}
}

// ProductEvent представляет событие изменения товара для Kafka
type ProductEvent struct {
	EventType string    `json:"event_type"` // PRODUCT_CREATED, PRODUCT_UPDATED, PRODUCT_DELETED
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}
