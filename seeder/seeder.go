package seeder

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/hassanjrao/translation-management/models"
	"github.com/hassanjrao/translation-management/repositories"

	"gorm.io/gorm"
)

var defaultLocales = []models.Locale{
	{Code: "en", Name: "English", IsActive: true},
	{Code: "fr", Name: "French", IsActive: true},
	{Code: "es", Name: "Spanish", IsActive: true},
	{Code: "de", Name: "German", IsActive: true},
	{Code: "it", Name: "Italian", IsActive: true},
}

var defaultTags = []models.Tag{
	{Name: "mobile", Description: "Mobile"},
	{Name: "desktop", Description: "Desktop"},
	{Name: "web", Description: "Web"},
	{Name: "admin", Description: "Admin"},
	{Name: "public", Description: "Public"},
}

// SeedBaseData creates the default locales and tags if they do not exist.
func SeedBaseData(db *gorm.DB) error {
	localeRepo := repositories.NewLocaleRepository(db)
	for i := range defaultLocales {
		locale := defaultLocales[i]
		if err := localeRepo.FirstOrCreate(&locale); err != nil {
			return err
		}
	}

	tagRepo := repositories.NewTagRepository(db)
	for i := range defaultTags {
		tag := defaultTags[i]
		if err := tagRepo.FirstOrCreate(&tag); err != nil {
			return err
		}
	}

	return nil
}

// SeedTranslations batch-inserts count generated translations spread over
// the default locales, each carrying one or two random tags.
func SeedTranslations(db *gorm.DB, count, batchSize int) error {
	if err := SeedBaseData(db); err != nil {
		return err
	}

	var locales []models.Locale
	if err := db.Find(&locales).Error; err != nil {
		return err
	}
	var tags []models.Tag
	if err := db.Find(&tags).Error; err != nil {
		return err
	}

	inserted := 0
	for inserted < count {
		itemsThisBatch := batchSize
		if remaining := count - inserted; remaining < itemsThisBatch {
			itemsThisBatch = remaining
		}

		batch := make([]models.Translation, 0, itemsThisBatch)
		for i := 0; i < itemsThisBatch; i++ {
			n := inserted + i + 1
			translation := models.Translation{
				LocaleID: locales[rand.Intn(len(locales))].ID,
				Key:      fmt.Sprintf("key_%d_%s", n, randomWord(6)),
				Value:    fmt.Sprintf("Generated value %d %s %s", n, randomWord(8), randomWord(8)),
			}
			translation.Tags = randomTags(tags)
			batch = append(batch, translation)
		}

		if err := db.CreateInBatches(&batch, batchSize).Error; err != nil {
			return err
		}

		inserted += itemsThisBatch
		log.Printf("Seeded %d/%d translations", inserted, count)
	}

	return nil
}

func randomTags(tags []models.Tag) []models.Tag {
	if len(tags) == 0 {
		return nil
	}
	picked := rand.Perm(len(tags))[:1+rand.Intn(2)]
	result := make([]models.Tag, 0, len(picked))
	for _, idx := range picked {
		result = append(result, tags[idx])
	}
	return result
}

func randomWord(length int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	word := make([]byte, length)
	for i := range word {
		word[i] = letters[rand.Intn(len(letters))]
	}
	return string(word)
}
