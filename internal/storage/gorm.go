package storage

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"ecocore/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrDuplicateUsername is returned by CreateUser when the username is taken.
var ErrDuplicateUsername = errors.New("username already exists")

type User struct {
	ID        string `gorm:"primaryKey"`
	Username  string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SensorReading struct {
	ID         uint   `gorm:"primaryKey"`
	SensorType string `gorm:"index;not null"`
	Value      float64
	Unit       string
	Timestamp  time.Time `gorm:"index"`
}

type Alert struct {
	ID           int `gorm:"primaryKey"`
	Level        string
	Message      string
	Timestamp    string
	Acknowledged bool
	Muted        bool
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(path string) (*GormStore, error) {
	newLogger := gormlogger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		gormlogger.Config{
			IgnoreRecordNotFoundError: true,
			LogLevel:                  gormlogger.Error,
		},
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: newLogger})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&User{}, &SensorReading{}, &Alert{})
	if err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return &GormStore{db: db}, nil
}

func (s *GormStore) CreateUser(user *domain.User) error {
	gormUser := &User{
		ID:        user.ID,
		Username:  user.Username,
		Password:  user.Password,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if err := s.db.Create(gormUser).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return ErrDuplicateUsername
		}
		return err
	}

	user.CreatedAt = gormUser.CreatedAt
	user.UpdatedAt = gormUser.UpdatedAt
	return nil
}

func (s *GormStore) GetUserByUsername(username string) (*domain.User, error) {
	var gormUser User
	result := s.db.First(&gormUser, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user: %w", result.Error)
	}

	return toDomainUser(&gormUser), nil
}

func (s *GormStore) GetUserByID(id string) (*domain.User, error) {
	var gormUser User
	result := s.db.First(&gormUser, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user: %w", result.Error)
	}

	return toDomainUser(&gormUser), nil
}

func toDomainUser(u *User) *domain.User {
	return &domain.User{
		ID:        u.ID,
		Username:  u.Username,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (s *GormStore) SaveReadings(readings []domain.Reading) error {
	if len(readings) == 0 {
		return nil
	}

	gormReadings := make([]SensorReading, 0, len(readings))
	for _, r := range readings {
		gormReadings = append(gormReadings, SensorReading{
			SensorType: r.SensorType,
			Value:      r.Value,
			Unit:       r.Unit,
			Timestamp:  r.Timestamp,
		})
	}

	return s.db.Create(&gormReadings).Error
}

func (s *GormStore) ListReadings(sensorType string, limit int) ([]domain.Reading, error) {
	if limit <= 0 {
		limit = 100
	}

	query := s.db.Model(&SensorReading{}).Order("timestamp DESC").Limit(limit)
	if sensorType != "" {
		query = query.Where("sensor_type = ?", sensorType)
	}

	var gormReadings []SensorReading
	if err := query.Find(&gormReadings).Error; err != nil {
		return nil, err
	}

	readings := make([]domain.Reading, 0, len(gormReadings))
	for _, gr := range gormReadings {
		readings = append(readings, domain.Reading{
			ID:         gr.ID,
			SensorType: gr.SensorType,
			Value:      gr.Value,
			Unit:       gr.Unit,
			Timestamp:  gr.Timestamp,
		})
	}
	return readings, nil
}

// SeedAlerts inserts the baseline alerts on first run. Existing rows keep
// their acknowledged/muted flags.
func (s *GormStore) SeedAlerts(alerts []domain.Alert) error {
	for _, a := range alerts {
		var existing Alert
		result := s.db.First(&existing, "id = ?", a.ID)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				row := Alert{
					ID:           a.ID,
					Level:        a.Level,
					Message:      a.Message,
					Timestamp:    a.Timestamp,
					Acknowledged: a.Acknowledged,
					Muted:        a.Muted,
				}
				if err := s.db.Create(&row).Error; err != nil {
					return err
				}
			} else {
				return result.Error
			}
		}
	}
	return nil
}

func (s *GormStore) ListAlerts() ([]domain.Alert, error) {
	var gormAlerts []Alert
	if err := s.db.Order("id ASC").Find(&gormAlerts).Error; err != nil {
		return nil, err
	}

	alerts := make([]domain.Alert, 0, len(gormAlerts))
	for _, ga := range gormAlerts {
		alerts = append(alerts, domain.Alert{
			ID:           ga.ID,
			Level:        ga.Level,
			Message:      ga.Message,
			Timestamp:    ga.Timestamp,
			Acknowledged: ga.Acknowledged,
			Muted:        ga.Muted,
		})
	}
	return alerts, nil
}

func (s *GormStore) SetAlertAcknowledged(id int, acknowledged bool) error {
	return s.setAlertFlag(id, "acknowledged", acknowledged)
}

func (s *GormStore) SetAlertMuted(id int, muted bool) error {
	return s.setAlertFlag(id, "muted", muted)
}

func (s *GormStore) setAlertFlag(id int, column string, value bool) error {
	result := s.db.Model(&Alert{}).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
