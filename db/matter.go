package db

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Matter is a locally cached case record. Data holds the raw JSON payload
// returned by the API so the CLI can list and inspect matters offline.
type Matter struct {
	ID        string `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"index" json:"reference"`
	Title     string `gorm:"index" json:"title"`
	Status    string `json:"status"`
	Data      string `json:"data"`
}

// PutMatter inserts or updates a matter record in the local cache.
func PutMatter(id, reference, title, status, data string) error {
	matter := Matter{
		ID:        id,
		Reference: reference,
		Title:     title,
		Status:    status,
		Data:      data,
	}
	if err := Db.Clauses(
		clause.OnConflict{UpdateAll: true},
	).Create(&matter).Error; err != nil {
		log.Error().Err(err).Msgf("Failed to upsert matter %s", matter.ID)
		return err
	}
	return nil
}

// EmptyMatterCache removes all records from the local matter cache.
func EmptyMatterCache() error {
	if err := Db.Unscoped().Where("1 = 1").Delete(&Matter{}).Error; err != nil {
		log.Error().Err(err).Msg("Failed to empty matter cache")
		return err
	}
	log.Info().Msg("Matter cache emptied successfully")
	return nil
}

// GetCachedMatters retrieves all matters in the local cache.
func GetCachedMatters() ([]Matter, error) {
	var matters []Matter
	if err := Db.Find(&matters).Error; err != nil {
		log.Error().Err(err).Msg("Failed to fetch matters from the database")
		return nil, err
	}
	return matters, nil
}

// GetMatterByID retrieves a matter from the cache by its ID.
func GetMatterByID(id string) (*Matter, error) {
	if Db == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}
	var matter Matter
	err := Db.First(&matter, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Error().Err(err).Msgf("Failed to fetch matter %s", id)
		return nil, err
	}
	return &matter, nil
}

// SearchMattersByTitle retrieves cached matters whose title contains the
// given substring.
func SearchMattersByTitle(titleSubstr string) ([]Matter, error) {
	var matters []Matter
	if err := Db.Where("title LIKE ?", "%"+titleSubstr+"%").Find(&matters).Error; err != nil {
		log.Error().Err(err).Msg("Failed to search matters")
		return nil, err
	}
	return matters, nil
}
