package repositories

import (
	"time"

	"github.com/hassanjrao/translation-management/models"

	"gorm.io/gorm"
)

type ApiTokenRepository interface {
	Create(token *models.ApiToken) error
	// GetByPrefix returns every token sharing a prefix; prefixes are not
	// unique, so callers must hash-check each candidate.
	GetByPrefix(prefix string) ([]models.ApiToken, error)
	TouchLastUsed(id uint) error
	Delete(id uint) error
}

type apiTokenRepository struct {
	db *gorm.DB
}

func NewApiTokenRepository(db *gorm.DB) ApiTokenRepository {
	return &apiTokenRepository{db: db}
}

func (r *apiTokenRepository) Create(token *models.ApiToken) error {
	return r.db.Create(token).Error
}

func (r *apiTokenRepository) GetByPrefix(prefix string) ([]models.ApiToken, error) {
	var tokens []models.ApiToken
	err := r.db.Where("token_prefix = ?", prefix).Preload("User").Find(&tokens).Error
	return tokens, err
}

func (r *apiTokenRepository) TouchLastUsed(id uint) error {
	now := time.Now()
	return r.db.Model(&models.ApiToken{}).Where("id = ?", id).Update("last_used_at", now).Error
}

func (r *apiTokenRepository) Delete(id uint) error {
	return r.db.Delete(&models.ApiToken{}, id).Error
}
