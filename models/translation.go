package models

import "time"

// Translation is a single localized string. The (locale_id, key) pair is
// unique, which is what makes per-locale export a plain key->value map.
type Translation struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	LocaleID  uint      `json:"locale_id" gorm:"not null;uniqueIndex:idx_translations_locale_key"`
	Locale    *Locale   `json:"locale,omitempty" gorm:"foreignKey:LocaleID;constraint:OnDelete:CASCADE"`
	Key       string    `json:"key" gorm:"not null;size:255;uniqueIndex:idx_translations_locale_key;index"`
	Value     string    `json:"value" gorm:"type:text;not null"`
	Tags      []Tag     `json:"tags" gorm:"many2many:translation_tag;"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"index"`
}
