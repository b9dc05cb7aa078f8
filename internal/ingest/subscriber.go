package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fleethvac/internal/models"

	"go.uber.org/zap"
)

// ReadingsTopic matches fleet/<tenant>/aggregates/<aggregate id>/readings
const ReadingsTopic = "fleet/+/aggregates/+/readings"

const recordTimeout = 5 * time.Second

// ReadingRecorder persists one sensor reading for a tenant's aggregate
type ReadingRecorder interface {
	RecordReading(ctx context.Context, tenantID string, reading *models.SensorReading) error
}

// Subscriber feeds broker readings into the lifecycle service
type Subscriber struct {
	recorder ReadingRecorder
	logger   *zap.Logger
}

func NewSubscriber(recorder ReadingRecorder, logger *zap.Logger) *Subscriber {
	return &Subscriber{recorder: recorder, logger: logger}
}

type readingPayload struct {
	RecordedAt  *time.Time `json:"recorded_at"`
	Temperature *float64   `json:"temperature"`
	Pressure    *float64   `json:"pressure"`
	Humidity    *float64   `json:"humidity"`
	PowerKW     *float64   `json:"power_kw"`
	ErrorCode   *string    `json:"error_code"`
}

// Start subscribes on the client; topic defaults to ReadingsTopic
func (s *Subscriber) Start(client *Client, topic string) error {
	if topic == "" {
		topic = ReadingsTopic
	}
	if err := client.Subscribe(topic, 1, s.Handle); err != nil {
		return err
	}
	s.logger.Info("sensor ingestion subscribed", zap.String("topic", topic))
	return nil
}

func (s *Subscriber) Handle(topic string, payload []byte) error {
	tenantID, aggregateID, err := ParseReadingsTopic(topic)
	if err != nil {
		return err
	}

	var p readingPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("malformed reading payload: %w", err)
	}

	reading := &models.SensorReading{
		AggregateID: aggregateID,
		Temperature: p.Temperature,
		Pressure:    p.Pressure,
		Humidity:    p.Humidity,
		PowerKW:     p.PowerKW,
		ErrorCode:   p.ErrorCode,
	}
	if p.RecordedAt != nil {
		reading.RecordedAt = p.RecordedAt.UTC()
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := s.recorder.RecordReading(ctx, tenantID, reading); err != nil {
		return fmt.Errorf("record reading for aggregate %d: %w", aggregateID, err)
	}

	s.logger.Debug("sensor reading recorded",
		zap.String("tenant_id", tenantID),
		zap.Int64("aggregate_id", aggregateID))
	return nil
}

// ParseReadingsTopic extracts the tenant key and aggregate id from a readings topic
func ParseReadingsTopic(topic string) (string, int64, error) {
	parts := strings.Split(topic, "/")
	if len(parts) != 5 || parts[0] != "fleet" || parts[2] != "aggregates" || parts[4] != "readings" {
		return "", 0, fmt.Errorf("unexpected readings topic %q", topic)
	}
	if parts[1] == "" {
		return "", 0, fmt.Errorf("missing tenant in topic %q", topic)
	}
	id, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil || id <= 0 {
		return "", 0, fmt.Errorf("invalid aggregate id in topic %q", topic)
	}
	return parts[1], id, nil
}
