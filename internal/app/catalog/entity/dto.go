package entity

// ProductImageSlots - число слотов изображений товара
const ProductImageSlots = 3

// ImageInput - унифицированное представление входного изображения.
// Заполняется handler'ом из multipart-запроса: либо сырые байты загруженного
// файла с его заявленным Content-Type, либо текстовое base64-поле формы.
// Сервис приводит оба варианта к единому виду хранения (см. service.normalizeImage).
type ImageInput struct {
	Data     []byte // байты multipart-загрузки (уже бинарные, base64 не применяется)
	MIMEType string // заявленный Content-Type загрузки
	Base64   string // текстовое base64-поле формы (img, img1..img3)
}

// Present сообщает, что во входе есть данные изображения в любом из представлений
func (in ImageInput) Present() bool {
	return len(in.Data) > 0 || in.Base64 != ""
}

type CreateCategoryRequest struct {
	Name  string `validate:"required,min=1,max=100"`
	Image ImageInput
}

type UpdateCategoryRequest struct {
	Name  string `validate:"required,min=1,max=100"`
	Image ImageInput
}

type CreateProductRequest struct {
	Name        string  `validate:"required,min=1,max=200"`
	Category    string  `validate:"required,min=1,max=100"`
	Description string  `validate:"required"`
	Price       float64 `validate:"gte=0"`
	Images      [ProductImageSlots]ImageInput
}

// UpdateProductRequest - частичное обновление: пустые текстовые поля означают
// "не трогать", HasPrice различает отсутствие поля price и явный ноль.
// В legacy-режиме все поля перезаписываются безусловно.
type UpdateProductRequest struct {
	Name        string
	Category    string
	Description string
	Price       float64
	HasPrice    bool
	Images      [ProductImageSlots]ImageInput
}

// ErrorResponse - стандартный ответ об ошибке: JSON {message}
type ErrorResponse struct {
	Message string `json:"message"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// CategoryListResponse - ответ со списком категорий: {count, data}
type CategoryListResponse struct {
	Count int        `json:"count"`
	Data  []Category `json:"data"`
}

// ProductListResponse - ответ со списком товаров: {count, data}
type ProductListResponse struct {
	Count int       `json:"count"`
	Data  []Product `json:"data"`
}
