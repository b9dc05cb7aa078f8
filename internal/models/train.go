package models

import "time"

// Train statuses
const (
	TrainStatusActive      = "active"
	TrainStatusMaintenance = "maintenance"
	TrainStatusRetired     = "retired"
)

// Train is a trainset owned by a tenant. TrainNumber is unique per tenant.
type Train struct {
	ID          int64     `json:"id" db:"id"`
	TenantID    string    `json:"tenant_id" db:"tenant_id"`
	TrainNumber string    `json:"train_number" db:"train_number"`
	Name        string    `json:"name" db:"name"`
	Operator    string    `json:"operator" db:"operator"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// TrainSummary is a list row with relationship counts
type TrainSummary struct {
	Train
	WagonCount     int `json:"wagon_count"`
	AggregateCount int `json:"aggregate_count"`
}

// Wagon is a car within a train. Position is unique within the train.
type Wagon struct {
	ID        int64     `json:"id" db:"id"`
	TrainID   int64     `json:"train_id" db:"train_id"`
	Position  int       `json:"position" db:"position"`
	WagonType string    `json:"wagon_type" db:"wagon_type"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// WagonDetail is a wagon with the aggregates currently mounted on it
type WagonDetail struct {
	Wagon
	Aggregates []AggregateSummary `json:"aggregates"`
}

// TrainDetail is a train with its wagons ordered by position
type TrainDetail struct {
	Train
	Wagons []WagonDetail `json:"wagons"`
}

// ConfigureTrainInput creates a train together with its initial wagon set
type ConfigureTrainInput struct {
	TrainNumber string
	Name        string
	Operator    string
	WagonTypes  []string
}

// TrainUpdate carries optional train field changes
type TrainUpdate struct {
	Name     *string
	Operator *string
	Status   *string
}

// WagonUpdate carries optional wagon field changes
type WagonUpdate struct {
	WagonType *string
	Status    *string
}
