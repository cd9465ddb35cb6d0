package services

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/4GeeksAcademy/Place-Between-Daniel/models"
	"github.com/4GeeksAcademy/Place-Between-Daniel/utils"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed catalog.yaml
var catalogYAML []byte

// SeedActivity mirrors the frontend catalog entry shape.
type SeedActivity struct {
	ID          string `json:"id" yaml:"id"`
	Phase       string `json:"phase" yaml:"phase"`
	Title       string `json:"title" yaml:"title"`
	Branch      string `json:"branch" yaml:"branch"`
	Description string `json:"description" yaml:"description"`
}

type SeedEmotion struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Value       *int   `yaml:"value"`
	URLMusic    string `yaml:"url_music"`
}

type Catalog struct {
	Activities []SeedActivity `yaml:"activities"`
	Emotions   []SeedEmotion  `yaml:"emotions"`
}

type SeedResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Total   int `json:"total"`
}

// DefaultCatalog is the activity and emotion catalog bundled with the binary.
func DefaultCatalog() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &c, nil
}

// SeedActivities upserts categories and activities by external id.
func (s *Service) SeedActivities(ctx context.Context, items []SeedActivity) (*SeedResult, error) {
	if len(items) == 0 {
		return nil, invalid("activities must be a non-empty list")
	}
	for i, it := range items {
		if strings.TrimSpace(it.ID) == "" || strings.TrimSpace(it.Title) == "" {
			return nil, invalid("activities[%d]: id and title are required", i)
		}
		if it.Phase != "" && !models.ActivityType(it.Phase).Valid() {
			return nil, invalid("activities[%d]: unknown phase %q", i, it.Phase)
		}
	}

	result := &SeedResult{Total: len(items)}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := map[string]uint{}
		for _, it := range items {
			branch := strings.TrimSpace(it.Branch)
			if branch == "" {
				branch = uncategorized
			}
			catID, ok := categories[branch]
			if !ok {
				cat := models.ActivityCategory{Name: branch}
				if err := tx.Where(models.ActivityCategory{Name: branch}).
					FirstOrCreate(&cat).Error; err != nil {
					return fmt.Errorf("category %q: %w", branch, err)
				}
				catID = cat.ID
				categories[branch] = catID
			}

			kind := models.ActivityType(it.Phase)
			if kind == "" {
				kind = models.ActivityBoth
			}

			var activity models.Activity
			err := tx.Where("external_id = ?", it.ID).First(&activity).Error
			switch {
			case err == nil:
				if err := tx.Model(&activity).Updates(map[string]interface{}{
					"name":          it.Title,
					"description":   it.Description,
					"category_id":   catID,
					"activity_type": kind,
					"is_active":     true,
				}).Error; err != nil {
					return fmt.Errorf("update activity %q: %w", it.ID, err)
				}
				result.Updated++
			case errors.Is(err, gorm.ErrRecordNotFound):
				activity = models.Activity{
					ExternalID:   it.ID,
					CategoryID:   catID,
					Name:         it.Title,
					Description:  it.Description,
					ActivityType: kind,
					IsActive:     true,
				}
				if err := tx.Create(&activity).Error; err != nil {
					return fmt.Errorf("create activity %q: %w", it.ID, err)
				}
				result.Created++
			default:
				return fmt.Errorf("load activity %q: %w", it.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.Logger.Info("activities_seeded",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
	)
	return result, nil
}

// SeedEmotions inserts the given emotions, skipping names that already exist.
func (s *Service) SeedEmotions(ctx context.Context, items []SeedEmotion) (*SeedResult, error) {
	if items == nil {
		c, err := DefaultCatalog()
		if err != nil {
			return nil, err
		}
		items = c.Emotions
	}

	result := &SeedResult{Total: len(items)}
	db := s.DB.WithContext(ctx)
	for _, it := range items {
		e := models.Emotion{
			Name:        it.Name,
			Description: it.Description,
			Value:       it.Value,
			URLMusic:    it.URLMusic,
		}
		res := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&e)
		if res.Error != nil {
			return nil, fmt.Errorf("seed emotion %q: %w", it.Name, res.Error)
		}
		result.Created += int(res.RowsAffected)
	}

	utils.Logger.Info("emotions_seeded", zap.Int("created", result.Created))
	return result, nil
}

// SeedDefaults loads the bundled catalog into the database.
func (s *Service) SeedDefaults(ctx context.Context) error {
	c, err := DefaultCatalog()
	if err != nil {
		return err
	}
	if _, err := s.SeedActivities(ctx, c.Activities); err != nil {
		return err
	}
	_, err = s.SeedEmotions(ctx, c.Emotions)
	return err
}

// ResetSessions wipes every session; completions, check-ins and goal links go
// with them through cascading deletes.
func (s *Service) ResetSessions(ctx context.Context) (int64, error) {
	res := s.DB.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.DailySession{})
	if res.Error != nil {
		return 0, fmt.Errorf("reset sessions: %w", res.Error)
	}
	if err := flushCache(ctx); err != nil {
		utils.Logger.Warn("cache_flush_failed", zap.Error(err))
	}
	utils.Logger.Warn("sessions_reset", zap.Int64("deleted", res.RowsAffected))
	return res.RowsAffected, nil
}
