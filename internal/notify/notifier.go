// Package notify periodically publishes the fleet alert report.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-care/internal/alerts"
)

// Publisher delivers a payload to a topic.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

// ReportSource produces the current alert report.
type ReportSource interface {
	Alerts(ctx context.Context) (alerts.Report, error)
}

// Notifier publishes the alert report when it contains actionable alerts.
type Notifier struct {
	source    ReportSource
	publisher Publisher
	topic     string
}

// NewNotifier creates a notifier publishing to topic.
func NewNotifier(source ReportSource, publisher Publisher, topic string) *Notifier {
	return &Notifier{source: source, publisher: publisher, topic: topic}
}

// PublishOnce builds the report and publishes it if any critical, attention
// or stale alert exists. It reports whether a message was sent.
func (n *Notifier) PublishOnce(ctx context.Context) (bool, error) {
	report, err := n.source.Alerts(ctx)
	if err != nil {
		return false, fmt.Errorf("build alert report: %w", err)
	}
	if !report.HasAlerts() {
		return false, nil
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return false, fmt.Errorf("encode alert report: %w", err)
	}
	if err := n.publisher.Publish(n.topic, payload); err != nil {
		return false, err
	}

	log.WithFields(log.Fields{
		"topic":     n.topic,
		"critical":  len(report.Critical),
		"attention": len(report.Attention),
		"stale":     len(report.Stale),
	}).Info("Published alert report")
	return true, nil
}

// Run publishes immediately and then on every tick until ctx is done.
// Failures are logged and the loop continues.
func (n *Notifier) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := n.PublishOnce(ctx); err != nil {
			log.WithError(err).Error("Alert publication failed")
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
