package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"ksscientifique/internal/app/catalog/entity"
	"ksscientifique/internal/app/catalog/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Имена полей формы для слотов изображений товара
var imageSlotFields = [entity.ProductImageSlots]string{"img1", "img2", "img3"}

// ProductHandler обрабатывает HTTP запросы админки для товаров
type ProductHandler struct {
	productService service.ProductServiceInterface
	validator      *validator.Validate
	uploadDir      string
}

func NewProductHandler(productService service.ProductServiceInterface, uploadDir string) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator.New(),
		uploadDir:      uploadDir,
	}
}

// CreateProduct принимает multipart-форму. Изображения приходят либо
// общим файловым полем files (до трех, по порядку слотов), либо
// отдельными полями img1..img3 (файл или base64); img - алиас первого слота.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	req := entity.CreateProductRequest{
		Name:        strings.TrimSpace(c.PostForm("name")),
		Category:    strings.TrimSpace(c.PostForm("category")),
		Description: strings.TrimSpace(c.PostForm("description")),
	}

	priceStr := c.PostForm("price")
	if priceStr == "" {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Message: "Send all required fields: name, category, description, price, img"})
		return
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Message: "Send all required fields: name, category, description, price, img"})
		return
	}
	req.Price = price

	images, err := h.readImageInputs(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Message: "Failed to read uploaded file"})
		return
	}
	req.Images = images

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Message: formatValidationError(err)})
		return
	}

	product, err := h.productService.Create(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GetProducts возвращает все товары в обертке {count, data}
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.productService.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.ProductListResponse{
		Count: len(products),
		Data:  products,
	})
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// GetProductsByCategory возвращает товары с точным совпадением метки
// категории, голым массивом без обертки
func (h *ProductHandler) GetProductsByCategory(c *gin.Context) {
	products, err := h.productService.GetByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if products == nil {
		products = []entity.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// UpdateProduct обновляет товар. Непереданные поля сохраняют значения,
// каждый слот изображения перезаписывается независимо
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	req := entity.UpdateProductRequest{
		Name:        strings.TrimSpace(c.PostForm("name")),
		Category:    strings.TrimSpace(c.PostForm("category")),
		Description: strings.TrimSpace(c.PostForm("description")),
	}

	if priceStr := c.PostForm("price"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, entity.ErrorResponse{Message: "price must be a number"})
			return
		}
		req.Price = price
		req.HasPrice = true
	}

	images, err := h.readImageInputs(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Message: "Failed to read uploaded file"})
		return
	}
	req.Images = images

	product, err := h.productService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "product deleted successfully"})
}

// readImageInputs собирает входные изображения из всех поддерживаемых
// представлений формы. Приоритет у файлов: сначала общее поле files
// (заполняет слоты по порядку), затем файлы в img1..img3. Base64-поля
// img1..img3 и алиас img заполняют только слоты без файловых данных.
func (h *ProductHandler) readImageInputs(c *gin.Context) ([entity.ProductImageSlots]entity.ImageInput, error) {
	var images [entity.ProductImageSlots]entity.ImageInput

	form, _ := c.MultipartForm()
	if form != nil {
		if files := form.File["files"]; len(files) > 0 {
			for i, fh := range files {
				if i >= entity.ProductImageSlots {
					break
				}
				data, mime, err := readUploadedFile(fh)
				if err != nil {
					return images, err
				}
				images[i].Data = data
				images[i].MIMEType = mime
				mirrorUpload(h.uploadDir, fmt.Sprintf("files_%d", i+1), fh.Filename, data)
			}
		}

		for i, field := range imageSlotFields {
			if images[i].Present() {
				continue
			}
			fhs := form.File[field]
			if len(fhs) == 0 {
				continue
			}
			data, mime, err := readUploadedFile(fhs[0])
			if err != nil {
				return images, err
			}
			images[i].Data = data
			images[i].MIMEType = mime
			mirrorUpload(h.uploadDir, field, fhs[0].Filename, data)
		}
	}

	for i, field := range imageSlotFields {
		if !images[i].Present() {
			images[i].Base64 = c.PostForm(field)
		}
	}
	if !images[0].Present() {
		images[0].Base64 = c.PostForm("img")
	}

	return images, nil
}
