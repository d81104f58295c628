package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-post-api/config"
	"github.com/oksasatya/go-user-post-api/internal/application"
	"github.com/oksasatya/go-user-post-api/internal/infrastructure/search"
	"github.com/oksasatya/go-user-post-api/pkg/events"
	"github.com/oksasatya/go-user-post-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-indexer", cfg.Env, cfg.LogLevel)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQEventsQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if len(cfg.ESAddrs()) == 0 {
		log.Fatal("Elasticsearch not configured")
	}

	es, err := search.NewClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		log.Fatalf("elasticsearch: %v", err)
	}
	projector := application.NewProjector(search.NewPostIndex(es, cfg.ESPostsIndex, logger), logger)

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// Prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}
	if err := helpers.DeclareQueue(ch, cfg.RabbitMQEventsQueue); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQEventsQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	ctx := context.Background()
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			handle(ctx, projector, logger, msg)
		}
		close(done)
	}()

	logger.Infof("indexer listening on queue=%s index=%s", cfg.RabbitMQEventsQueue, cfg.ESPostsIndex)
	<-stop
	logger.Info("shutting down...")
	_ = ch.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

func handle(ctx context.Context, p *application.Projector, logger *logrus.Logger, msg amqp.Delivery) {
	var ev events.Event
	if err := json.Unmarshal(msg.Body, &ev); err != nil {
		logger.WithError(err).WithField("message_id", msg.MessageId).Warn("bad message")
		_ = msg.Nack(false, false)
		return
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := p.Handle(c, ev); err != nil {
		fields := logrus.Fields{"event_id": ev.ID, "type": ev.Type}
		if errors.Is(err, application.ErrMalformedEvent) {
			helpers.LogWarn(logger, "dropping event", err, fields)
			_ = msg.Nack(false, false)
			return
		}
		helpers.LogError(logger, "index update failed", err, fields)
		_ = msg.Nack(false, true)
		return
	}
	_ = msg.Ack(false)
}
