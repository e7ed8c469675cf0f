package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/aironlab/backend/internal/config"
	"github.com/aironlab/backend/internal/events"
	"github.com/aironlab/backend/internal/mail"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg := config.Load()
	if cfg.RabbitMQURL == "" {
		logger.Error("RABBITMQ_URL is required")
		os.Exit(1)
	}
	if cfg.AdminEmail == "" {
		logger.Error("ADMIN_EMAIL is required")
		os.Exit(1)
	}

	var mailer mail.Mailer = mail.Noop{}
	if cfg.SMTPUser != "" && cfg.SMTPPass != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	} else {
		logger.Warn("smtp not configured, notifications will be dropped")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("failed to open channel", "error", err)
		os.Exit(1)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(events.ExchangeName, "topic", true, false, false, false, nil); err != nil {
		logger.Error("failed to declare exchange", "error", err)
		os.Exit(1)
	}

	q, err := ch.QueueDeclare(events.ContactNotifyQueue, true, false, false, false, nil)
	if err != nil {
		logger.Error("failed to declare queue", "error", err)
		os.Exit(1)
	}

	if err := ch.QueueBind(q.Name, events.ContactReceivedKey, events.ExchangeName, false, nil); err != nil {
		logger.Error("failed to bind queue", "error", err)
		os.Exit(1)
	}

	deliveries, err := ch.Consume(q.Name, "contact-notifier", false, false, false, false, nil)
	if err != nil {
		logger.Error("failed to start consuming", "error", err)
		os.Exit(1)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("worker started", "queue", q.Name)

	for {
		select {
		case <-stop:
			logger.Info("worker stopped")
			return
		case d, ok := <-deliveries:
			if !ok {
				logger.Error("delivery channel closed")
				return
			}
			handleDelivery(logger, mailer, cfg, d)
		}
	}
}

func handleDelivery(logger *slog.Logger, mailer mail.Mailer, cfg *config.Config, d amqp.Delivery) {
	var event events.ContactReceived
	if err := json.Unmarshal(d.Body, &event); err != nil {
		logger.Error("malformed event, dropping", "error", err)
		_ = d.Nack(false, false)
		return
	}

	ctx := context.Background()
	msg := mail.AdminNotification(cfg.SMTPUser, cfg.AdminEmail, event.Payload)
	if err := mailer.Send(ctx, msg); err != nil {
		logger.Error("admin notification failed", "request_id", event.Payload.RequestID, "error", err)
		_ = d.Nack(false, true)
		return
	}

	if cfg.SendConfirmation {
		if err := mailer.Send(ctx, mail.SenderConfirmation(cfg.SMTPUser, event.Payload)); err != nil {
			logger.Error("confirmation failed", "request_id", event.Payload.RequestID, "error", err)
		}
	}

	logger.Info("notification sent", "request_id", event.Payload.RequestID)
	_ = d.Ack(false)
}
