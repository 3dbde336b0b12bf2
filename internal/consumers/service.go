package consumers

import (
	"context"
	"fmt"
	"log/slog"

	"busline/internal/config"
	"busline/internal/messaging"
	"busline/internal/models"
	"busline/internal/search"

	"github.com/nats-io/stan.go"
)

const queueGroup = "indexers"

type ConsumerService struct {
	nats     *messaging.NATSClient
	handlers *Handlers
	subs     []stan.Subscription
}

func NewConsumerService(cfg *config.Config) (*ConsumerService, error) {
	es, err := search.NewElasticsearchClient(cfg.Elasticsearch)
	if err != nil {
		return nil, fmt.Errorf("failed to create search client: %w", err)
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}

	return &ConsumerService{
		nats:     natsClient,
		handlers: NewHandlers(es, cfg.Elasticsearch.Timeout),
	}, nil
}

func (cs *ConsumerService) Start() error {
	slog.Info("Starting NATS consumers...")

	subscriptions := []struct {
		subject string
		handler stan.MsgHandler
	}{
		{models.EventBookingCreated, cs.handlers.HandleBookingCreated},
		{models.EventBookingBoarded, cs.handlers.HandleBookingBoarded},
	}

	for _, s := range subscriptions {
		sub, err := cs.nats.SubscribeQueue(s.subject, queueGroup, s.handler)
		if err != nil {
			return err
		}
		cs.subs = append(cs.subs, sub)
	}

	slog.Info("All consumers started successfully")
	return nil
}

func (cs *ConsumerService) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down consumer service...")

	// Close, not Unsubscribe: durable queue subscriptions keep their position
	for _, sub := range cs.subs {
		if err := sub.Close(); err != nil {
			slog.Error("Error closing subscription", "error", err)
		}
	}

	if cs.nats != nil {
		if err := cs.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
			return err
		}
	}
	return nil
}
