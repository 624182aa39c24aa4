package handler

import (
	"errors"
	"net/http"
	"strings"

	"ksscientifique/internal/app/catalog/entity"
	"ksscientifique/internal/app/catalog/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// CategoryHandler обрабатывает HTTP запросы админки для категорий
type CategoryHandler struct {
	categoryService service.CategoryServiceInterface
	validator       *validator.Validate
	uploadDir       string
}

func NewCategoryHandler(categoryService service.CategoryServiceInterface, uploadDir string) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		validator:       validator.New(),
		uploadDir:       uploadDir,
	}
}

// CreateCategory принимает multipart-форму: текстовое поле name плюс
// изображение либо файлом (file), либо base64-полем (img)
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	req := entity.CreateCategoryRequest{
		Name: strings.TrimSpace(c.PostForm("name")),
	}
	req.Image.Base64 = c.PostForm("img")

	if fh, err := c.FormFile("file"); err == nil {
		data, mime, err := readUploadedFile(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, entity.ErrorResponse{Message: "Failed to read uploaded file"})
			return
		}
		req.Image.Data = data
		req.Image.MIMEType = mime
		mirrorUpload(h.uploadDir, "file", fh.Filename, data)
	}

	if req.Name == "" || !req.Image.Present() {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Message: "Send all required fields: name, img"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Message: formatValidationError(err)})
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// GetCategories возвращает все категории в обертке {count, data}
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.CategoryListResponse{
		Count: len(categories),
		Data:  categories,
	})
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, err := h.categoryService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// UpdateCategory перезаписывает имя; изображение меняется только если
// в запросе пришли новые данные (файл или непустое base64-поле)
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	req := entity.UpdateCategoryRequest{
		Name: strings.TrimSpace(c.PostForm("name")),
	}
	req.Image.Base64 = c.PostForm("img")

	if fh, err := c.FormFile("file"); err == nil {
		data, mime, err := readUploadedFile(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, entity.ErrorResponse{Message: "Failed to read uploaded file"})
			return
		}
		req.Image.Data = data
		req.Image.MIMEType = mime
		mirrorUpload(h.uploadDir, "file", fh.Filename, data)
	}

	category, err := h.categoryService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.categoryService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "category deleted successfully"})
}

// respondServiceError транслирует ошибки бизнес-слоя в HTTP статусы:
// валидация - 400, отсутствие записи - 404, остальное - 500
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidImage):
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Message: validationMessage(err)})
	case errors.Is(err, service.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, entity.ErrorResponse{Message: "Category not found"})
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, entity.ErrorResponse{Message: "Product not found"})
	default:
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Message: err.Error()})
	}
}

// validationMessage отбрасывает служебный префикс sentinel-ошибки,
// наружу уходит только человекочитаемая часть
func validationMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{service.ErrValidation, service.ErrInvalidImage} {
		prefix := sentinel.Error() + ": "
		if strings.HasPrefix(msg, prefix) {
			return strings.TrimPrefix(msg, prefix)
		}
	}
	return msg
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
