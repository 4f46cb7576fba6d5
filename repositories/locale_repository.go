package repositories

import (
	"github.com/hassanjrao/translation-management/models"

	"gorm.io/gorm"
)

type LocaleRepository interface {
	Create(locale *models.Locale) error
	GetByCode(code string) (*models.Locale, error)
	GetAll() ([]models.Locale, error)
	FirstOrCreate(locale *models.Locale) error
}

type localeRepository struct {
	db *gorm.DB
}

func NewLocaleRepository(db *gorm.DB) LocaleRepository {
	return &localeRepository{db: db}
}

func (r *localeRepository) Create(locale *models.Locale) error {
	return r.db.Create(locale).Error
}

func (r *localeRepository) GetByCode(code string) (*models.Locale, error) {
	var locale models.Locale
	err := r.db.Where("code = ?", code).First(&locale).Error
	return &locale, err
}

func (r *localeRepository) GetAll() ([]models.Locale, error) {
	var locales []models.Locale
	err := r.db.Order("code asc").Find(&locales).Error
	return locales, err
}

func (r *localeRepository) FirstOrCreate(locale *models.Locale) error {
	return r.db.Where("code = ?", locale.Code).FirstOrCreate(locale).Error
}
