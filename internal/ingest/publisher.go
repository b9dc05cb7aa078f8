package ingest

import (
	"context"
	"encoding/json"
	"fmt"

	"fleethvac/internal/models"
)

// Publisher is the outbound half of the broker connection
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload []byte) error
}

// AlertPublisher sends maintenance alerts to fleet/<tenant>/alerts
type AlertPublisher struct {
	publisher Publisher
}

func NewAlertPublisher(publisher Publisher) *AlertPublisher {
	return &AlertPublisher{publisher: publisher}
}

func AlertTopic(tenantID string) string {
	return fmt.Sprintf("fleet/%s/alerts", tenantID)
}

func (p *AlertPublisher) PublishMaintenanceAlert(ctx context.Context, alert models.MaintenanceAlert) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to encode alert: %w", err)
	}
	return p.publisher.Publish(AlertTopic(alert.TenantID), 1, false, payload)
}
