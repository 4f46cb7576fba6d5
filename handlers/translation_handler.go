package handlers

import (
	"strconv"

	"github.com/hassanjrao/translation-management/helper"
	"github.com/hassanjrao/translation-management/models"
	"github.com/hassanjrao/translation-management/services"

	"github.com/gin-gonic/gin"
	"gopkg.in/go-playground/validator.v9"
)

type TranslationHandler struct {
	translationService services.TranslationService
	Helper             *helper.HTTPHelper
}

func NewTranslationHandler(translationService services.TranslationService, h *helper.HTTPHelper) *TranslationHandler {
	return &TranslationHandler{translationService: translationService, Helper: h}
}

func (h *TranslationHandler) Store(c *gin.Context) {
	var req models.StoreTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Malformed request body", nil)
		return
	}

	if err := h.Helper.Validate.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			h.Helper.SendValidationError(c, validationErrors)
			return
		}
		h.Helper.SendBadRequest(c, "Invalid request", nil)
		return
	}

	translation, err := h.translationService.Create(req)
	if err != nil {
		h.Helper.SendServiceError(c, "Unable to create translation", err)
		return
	}

	h.Helper.SendCreated(c, "Translation created", translation)
}

func (h *TranslationHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendNotFoundError(c, "translation not found")
		return
	}

	var req models.UpdateTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Malformed request body", nil)
		return
	}

	if err := h.Helper.Validate.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			h.Helper.SendValidationError(c, validationErrors)
			return
		}
		h.Helper.SendBadRequest(c, "Invalid request", nil)
		return
	}

	translation, err := h.translationService.Update(uint(id), req)
	if err != nil {
		h.Helper.SendServiceError(c, "Unable to update translation", err)
		return
	}

	h.Helper.SendSuccess(c, "Translation updated", translation)
}

func (h *TranslationHandler) Show(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendNotFoundError(c, "translation not found")
		return
	}

	translation, err := h.translationService.Get(uint(id))
	if err != nil {
		h.Helper.SendServiceError(c, "Unable to fetch translation", err)
		return
	}

	h.Helper.SendSuccess(c, "Translation retrieved", translation)
}

func (h *TranslationHandler) Search(c *gin.Context) {
	var params models.SearchTranslationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, "Malformed query parameters", nil)
		return
	}

	if err := h.Helper.Validate.Struct(params); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			h.Helper.SendValidationError(c, validationErrors)
			return
		}
		h.Helper.SendBadRequest(c, "Invalid request", nil)
		return
	}

	page, err := h.translationService.Search(params)
	if err != nil {
		h.Helper.SendServiceError(c, "Unable to search translations", err)
		return
	}

	h.Helper.SendSuccess(c, "Translations fetched", gin.H{
		"items":      page.Items,
		"pagination": h.Helper.GeneratePaging(c, params.PerPage, params.Page, page.Total),
	})
}

func (h *TranslationHandler) Export(c *gin.Context) {
	locale := c.Query("locale")
	if locale == "" {
		h.Helper.SendFieldValidationError(c, map[string][]string{
			"locale": {"the locale parameter is required"},
		})
		return
	}

	data, err := h.translationService.ExportByLocale(locale)
	if err != nil {
		h.Helper.SendServiceError(c, "Unable to export translations", err)
		return
	}

	h.Helper.SendSuccess(c, "Translations exported", data)
}

func (h *TranslationHandler) Destroy(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendNotFoundError(c, "translation not found")
		return
	}

	if err := h.translationService.Delete(uint(id)); err != nil {
		h.Helper.SendServiceError(c, "Unable to delete translation", err)
		return
	}

	h.Helper.SendSuccess(c, "Translation deleted", true)
}
