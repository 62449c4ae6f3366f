package domain

type UserRepository interface {
	CreateUser(user *User) error
	GetUserByUsername(username string) (*User, error)
	GetUserByID(id string) (*User, error)
}

type ReadingRepository interface {
	SaveReadings(readings []Reading) error
	ListReadings(sensorType string, limit int) ([]Reading, error)
}

type AlertRepository interface {
	SeedAlerts(alerts []Alert) error
	ListAlerts() ([]Alert, error)
	SetAlertAcknowledged(id int, acknowledged bool) error
	SetAlertMuted(id int, muted bool) error
}
