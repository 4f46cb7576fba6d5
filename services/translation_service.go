package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/hassanjrao/translation-management/models"
	"github.com/hassanjrao/translation-management/repositories"

	"gorm.io/gorm"
)

type TranslationService interface {
	Create(req models.StoreTranslationRequest) (*models.Translation, error)
	Update(id uint, req models.UpdateTranslationRequest) (*models.Translation, error)
	Get(id uint) (*models.Translation, error)
	Search(params models.SearchTranslationParams) (*models.TranslationPage, error)
	ExportByLocale(code string) (map[string]string, error)
	Delete(id uint) error
}

type translationService struct {
	translationRepo repositories.TranslationRepository
	localeRepo      repositories.LocaleRepository
	tagRepo         repositories.TagRepository
}

func NewTranslationService(translationRepo repositories.TranslationRepository, localeRepo repositories.LocaleRepository, tagRepo repositories.TagRepository) TranslationService {
	return &translationService{
		translationRepo: translationRepo,
		localeRepo:      localeRepo,
		tagRepo:         tagRepo,
	}
}

func (s *translationService) Create(req models.StoreTranslationRequest) (*models.Translation, error) {
	dto := models.TranslationDTO{
		LocaleCode: req.Locale,
		Key:        req.Key,
		Value:      req.Value,
		Tags:       req.Tags,
	}

	// All semantic checks happen before any mutation.
	if err := s.validateDTO(dto, 0); err != nil {
		return nil, err
	}

	return s.translationRepo.Create(dto)
}

func (s *translationService) Update(id uint, req models.UpdateTranslationRequest) (*models.Translation, error) {
	existing, err := s.translationRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	// Omitted fields keep their stored values.
	dto := models.TranslationDTO{
		LocaleCode: existing.Locale.Code,
		Key:        existing.Key,
		Value:      existing.Value,
		Tags:       tagNames(existing.Tags),
	}
	if req.Locale != nil {
		dto.LocaleCode = *req.Locale
	}
	if req.Key != nil {
		dto.Key = *req.Key
	}
	if req.Value != nil {
		dto.Value = *req.Value
	}
	if req.Tags != nil {
		dto.Tags = *req.Tags
	}

	if err := s.validateDTO(dto, id); err != nil {
		return nil, err
	}

	return s.translationRepo.Update(id, dto)
}

func (s *translationService) Get(id uint) (*models.Translation, error) {
	return s.translationRepo.FindByID(id)
}

func (s *translationService) Search(params models.SearchTranslationParams) (*models.TranslationPage, error) {
	filter := models.TranslationFilter{
		LocaleCode: params.Locale,
		Key:        params.Key,
		Value:      params.Value,
		Tags:       splitTags(params.Tags),
		PerPage:    params.PerPage,
		Page:       params.Page,
	}

	if filter.LocaleCode != "" {
		if _, err := s.localeRepo.GetByCode(filter.LocaleCode); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewValidationError("locale", fmt.Sprintf("locale %s not found", filter.LocaleCode))
			}
			return nil, err
		}
	}

	return s.translationRepo.Search(filter)
}

func (s *translationService) ExportByLocale(code string) (map[string]string, error) {
	if _, err := s.localeRepo.GetByCode(code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewValidationError("locale", fmt.Sprintf("locale %s not found", code))
		}
		return nil, err
	}

	return s.translationRepo.ExportByLocale(code)
}

func (s *translationService) Delete(id uint) error {
	translation, err := s.translationRepo.FindByID(id)
	if err != nil {
		return err
	}

	if err := s.translationRepo.Delete(translation); err != nil {
		log.Printf("Failed to delete translation id=%d: %v", id, err)
		return err
	}

	return nil
}

// validateDTO collects every field-level problem before anything is
// written: unknown locale, unknown tag names, duplicate (locale, key).
func (s *translationService) validateDTO(dto models.TranslationDTO, ignoreID uint) error {
	fields := map[string][]string{}

	localeKnown := true
	if _, err := s.localeRepo.GetByCode(dto.LocaleCode); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		localeKnown = false
		fields["locale"] = append(fields["locale"], fmt.Sprintf("locale %s not found", dto.LocaleCode))
	}

	if len(dto.Tags) > 0 {
		known, err := s.tagRepo.GetByNames(dto.Tags)
		if err != nil {
			return err
		}
		knownNames := make(map[string]struct{}, len(known))
		for _, tag := range known {
			knownNames[tag.Name] = struct{}{}
		}
		for _, name := range dto.Tags {
			if _, ok := knownNames[name]; !ok {
				fields["tags"] = append(fields["tags"], fmt.Sprintf("unknown tag %s", name))
			}
		}
	}

	if localeKnown {
		exists, err := s.translationRepo.ExistsForLocaleKey(dto.LocaleCode, dto.Key, ignoreID)
		if err != nil {
			return err
		}
		if exists {
			fields["key"] = append(fields["key"], "the key has already been taken for this locale")
		}
	}

	if len(fields) > 0 {
		return models.ErrorValidation{Fields: fields}
	}
	return nil
}

func tagNames(tags []models.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}

func splitTags(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
