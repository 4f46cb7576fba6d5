package repositories

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hassanjrao/translation-management/cache"
	"github.com/hassanjrao/translation-management/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Cache tags. Search results are invalidated broadly on any mutation
// because filter predicates can match any record; export snapshots are
// invalidated per locale.
const (
	cacheTagTranslations = "translations"
	cacheTagSearch       = "search"
)

func cacheTagLocale(code string) string {
	return "locale:" + code
}

type TranslationRepository interface {
	Create(dto models.TranslationDTO) (*models.Translation, error)
	Update(id uint, dto models.TranslationDTO) (*models.Translation, error)
	FindByID(id uint) (*models.Translation, error)
	Search(filter models.TranslationFilter) (*models.TranslationPage, error)
	ExportByLocale(code string) (map[string]string, error)
	Delete(translation *models.Translation) error
	ExistsForLocaleKey(code, key string, ignoreID uint) (bool, error)
}

type translationRepository struct {
	db    *gorm.DB
	cache *cache.Cache
	ttl   time.Duration
}

func NewTranslationRepository(db *gorm.DB, c *cache.Cache, ttl time.Duration) TranslationRepository {
	return &translationRepository{db: db, cache: c, ttl: ttl}
}

func (r *translationRepository) Create(dto models.TranslationDTO) (*models.Translation, error) {
	localeID, err := r.localeID(dto.LocaleCode)
	if err != nil {
		return nil, err
	}

	tags, err := r.tagsByNames(dto.Tags)
	if err != nil {
		return nil, err
	}

	translation := &models.Translation{
		LocaleID: localeID,
		Key:      dto.Key,
		Value:    dto.Value,
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(translation).Error; err != nil {
			return err
		}
		return tx.Model(translation).Association("Tags").Replace(tags)
	})
	if err != nil {
		return nil, err
	}

	// Invalidate only after the transaction committed; doing it earlier
	// risks a concurrent reader re-caching pre-commit state.
	r.invalidateLocale(dto.LocaleCode)

	return r.FindByID(translation.ID)
}

func (r *translationRepository) Update(id uint, dto models.TranslationDTO) (*models.Translation, error) {
	var translation models.Translation
	if err := r.db.Preload("Locale").First(&translation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "translation not found"}
		}
		return nil, err
	}

	previousLocale := ""
	if translation.Locale != nil {
		previousLocale = translation.Locale.Code
	}

	if dto.LocaleCode != previousLocale {
		localeID, err := r.localeID(dto.LocaleCode)
		if err != nil {
			return nil, err
		}
		translation.LocaleID = localeID
	}

	tags, err := r.tagsByNames(dto.Tags)
	if err != nil {
		return nil, err
	}

	translation.Key = dto.Key
	translation.Value = dto.Value
	translation.Locale = nil
	translation.Tags = nil

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&translation).Error; err != nil {
			return err
		}
		return tx.Model(&translation).Association("Tags").Replace(tags)
	})
	if err != nil {
		return nil, err
	}

	r.invalidateLocale(dto.LocaleCode)
	if previousLocale != "" && previousLocale != dto.LocaleCode {
		r.invalidateLocale(previousLocale)
	}

	return r.FindByID(translation.ID)
}

func (r *translationRepository) FindByID(id uint) (*models.Translation, error) {
	var translation models.Translation
	err := r.db.Preload("Locale").Preload("Tags").First(&translation, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "translation not found"}
		}
		return nil, err
	}
	if translation.Tags == nil {
		translation.Tags = []models.Tag{}
	}
	return &translation, nil
}

func (r *translationRepository) Search(filter models.TranslationFilter) (*models.TranslationPage, error) {
	key := searchCacheKey(filter)
	tags := []string{cacheTagTranslations, cacheTagSearch}

	value, err := r.cache.Remember(key, tags, r.ttl, func() (interface{}, error) {
		return r.searchStore(filter)
	})
	if err != nil {
		return nil, err
	}

	return value.(*models.TranslationPage), nil
}

func (r *translationRepository) ExportByLocale(code string) (map[string]string, error) {
	version := r.cache.LocaleVersion(code)
	key := fmt.Sprintf("translations:%s:%d", code, version)
	tags := []string{cacheTagTranslations, cacheTagLocale(code)}

	value, err := r.cache.Remember(key, tags, r.ttl, func() (interface{}, error) {
		return r.exportStore(code)
	})
	if err != nil {
		return nil, err
	}

	return value.(map[string]string), nil
}

func (r *translationRepository) Delete(translation *models.Translation) error {
	localeCode := ""
	if translation.Locale != nil {
		localeCode = translation.Locale.Code
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		// Clear the join rows, not the Tag entities themselves.
		if err := tx.Model(translation).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Translation{}, translation.ID).Error
	})
	if err != nil {
		return err
	}

	if localeCode != "" {
		r.invalidateLocale(localeCode)
	} else {
		r.cache.InvalidateTags(cacheTagSearch)
	}

	return nil
}

func (r *translationRepository) ExistsForLocaleKey(code, key string, ignoreID uint) (bool, error) {
	query := r.db.Model(&models.Translation{}).
		Joins("JOIN locales ON locales.id = translations.locale_id").
		Where("locales.code = ? AND translations.key = ?", code, key)
	if ignoreID > 0 {
		query = query.Where("translations.id <> ?", ignoreID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *translationRepository) searchStore(filter models.TranslationFilter) (*models.TranslationPage, error) {
	query := r.db.Model(&models.Translation{}).Preload("Locale").Preload("Tags")

	if filter.LocaleCode != "" {
		query = query.Joins("JOIN locales ON locales.id = translations.locale_id").
			Where("locales.code = ?", filter.LocaleCode)
	}
	if filter.Key != "" {
		query = query.Where("translations.key LIKE ?", "%"+filter.Key+"%")
	}
	if filter.Value != "" {
		query = query.Where("translations.value LIKE ?", "%"+filter.Value+"%")
	}
	if len(filter.Tags) > 0 {
		query = query.Where("translations.id IN (?)",
			r.db.Table("translation_tag").
				Select("translation_tag.translation_id").
				Joins("JOIN tags ON tags.id = translation_tag.tag_id").
				Where("tags.name IN ?", filter.Tags))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []models.Translation
	offset := (filter.Page - 1) * filter.PerPage
	err := query.Order("translations.updated_at DESC").
		Offset(offset).
		Limit(filter.PerPage).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	// Response shape stays stable: tags are an empty set, never absent.
	for i := range items {
		if items[i].Tags == nil {
			items[i].Tags = []models.Tag{}
		}
	}

	return &models.TranslationPage{Items: items, Total: total}, nil
}

func (r *translationRepository) exportStore(code string) (map[string]string, error) {
	var rows []struct {
		Key   string
		Value string
	}
	err := r.db.Model(&models.Translation{}).
		Joins("JOIN locales ON locales.id = translations.locale_id").
		Where("locales.code = ?", code).
		Select("translations.key", "translations.value").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	export := make(map[string]string, len(rows))
	for _, row := range rows {
		export[row.Key] = row.Value
	}
	return export, nil
}

func (r *translationRepository) localeID(code string) (uint, error) {
	var locale models.Locale
	if err := r.db.Where("code = ?", code).First(&locale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, models.ErrorNotFound{Message: fmt.Sprintf("locale %s not found", code)}
		}
		return 0, err
	}
	return locale.ID, nil
}

func (r *translationRepository) tagsByNames(names []string) ([]models.Tag, error) {
	if len(names) == 0 {
		return []models.Tag{}, nil
	}
	var tags []models.Tag
	err := r.db.Where("name IN ?", names).Find(&tags).Error
	return tags, err
}

func (r *translationRepository) invalidateLocale(code string) {
	r.cache.InvalidateTags(cacheTagSearch, cacheTagLocale(code))
	r.cache.BumpLocaleVersion(code)
}

func searchCacheKey(filter models.TranslationFilter) string {
	normalized, _ := json.Marshal(filter)
	digest := sha1.Sum(normalized)
	return "translations.search." + hex.EncodeToString(digest[:])
}
