package helper

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/hassanjrao/translation-management/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"
	entranslations "gopkg.in/go-playground/validator.v9/translations/en"
)

// HTTPHelper renders the API envelopes: {"message": ..., "data": ...} on
// success and {"message": ..., "errors": {...}} on failure.
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

// NewHTTPHelper builds a helper with an English-translating validator for
// request struct validation.
func NewHTTPHelper() *HTTPHelper {
	english := en.New()
	uni := ut.New(english, english)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	_ = entranslations.RegisterDefaultTranslations(validate, translator)

	return &HTTPHelper{
		Validate:   validate,
		Translator: translator,
	}
}

// SendSuccess ...
// Send success response to consumers.
func (u *HTTPHelper) SendSuccess(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data":    data,
	})
}

// SendCreated ...
// Send 201 response to consumers.
func (u *HTTPHelper) SendCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"message": message,
		"data":    data,
	})
}

// SendBadRequest ...
// Send bad request response to consumers.
func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string, errs map[string][]string) {
	if errs == nil {
		errs = map[string][]string{}
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"message": message,
		"errors":  errs,
	})
}

// SendUnauthorizedError ...
// Send unauthorized response to consumers.
func (u *HTTPHelper) SendUnauthorizedError(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"message": "Unauthorized",
	})
}

// SendNotFoundError ...
// Send not found response to consumers.
func (u *HTTPHelper) SendNotFoundError(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{
		"message": message,
		"errors":  map[string][]string{},
	})
}

// SendValidationError ...
// Send translated struct validation errors to consumers.
func (u *HTTPHelper) SendValidationError(c *gin.Context, validationErrors validator.ValidationErrors) {
	errorResponse := map[string][]string{}
	errorTranslation := validationErrors.Translate(u.Translator)
	for _, err := range validationErrors {
		errKey := Underscore(err.StructField())
		errorResponse[errKey] = append(errorResponse[errKey], errorTranslation[err.Namespace()])
	}

	u.SendFieldValidationError(c, errorResponse)
}

// SendFieldValidationError ...
// Send a field -> messages map as a 422.
func (u *HTTPHelper) SendFieldValidationError(c *gin.Context, fields map[string][]string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": "The given data was invalid",
		"errors":  fields,
	})
}

// SendServiceError maps typed service errors to their status codes and
// everything else to a generic 400 carrying the underlying message.
func (u *HTTPHelper) SendServiceError(c *gin.Context, message string, err error) {
	var validationErr models.ErrorValidation
	var notFoundErr models.ErrorNotFound
	var unauthorizedErr models.ErrorUnauthorized
	var conflictErr models.ErrorConflict

	switch {
	case errors.As(err, &validationErr):
		u.SendFieldValidationError(c, validationErr.Fields)
	case errors.As(err, &notFoundErr):
		u.SendNotFoundError(c, notFoundErr.Error())
	case errors.As(err, &unauthorizedErr):
		u.SendUnauthorizedError(c)
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{
			"message": conflictErr.Error(),
			"errors":  map[string][]string{},
		})
	default:
		u.SendBadRequest(c, message, map[string][]string{
			"exception": {err.Error()},
		})
	}
}

// get pagination URL
func (u *HTTPHelper) GetPagingUrl(c *gin.Context, page, limit int) string {
	r := c.Request
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	currentURL := scheme + "://" + r.Host + r.URL.Path + "?page=" + strconv.Itoa(page) + "&per_page=" + strconv.Itoa(limit)
	return currentURL
}

// Set pagination response
func (u *HTTPHelper) GeneratePaging(c *gin.Context, limit, page int, totalRecord int64) map[string]interface{} {
	prevURL, nextURL, firstURL, lastURL := "", "", "", ""

	totalPages := int(math.Ceil(float64(totalRecord) / float64(limit)))

	if page > 1 && totalPages >= page {
		prevURL = u.GetPagingUrl(c, page-1, limit)
		firstURL = u.GetPagingUrl(c, 1, limit)
	}

	if totalPages > page {
		nextURL = u.GetPagingUrl(c, page+1, limit)
		lastURL = u.GetPagingUrl(c, totalPages, limit)
	}

	links := map[string]interface{}{
		"previous": prevURL,
		"next":     nextURL,
		"first":    firstURL,
		"last":     lastURL,
	}

	return map[string]interface{}{
		"total_records": totalRecord,
		"per_page":      limit,
		"current_page":  page,
		"total_pages":   totalPages,
		"links":         links,
	}
}
