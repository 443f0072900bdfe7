package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-management/config"
	"github.com/oksasatya/go-user-management/pkg/helpers"
	"github.com/oksasatya/go-user-management/pkg/mailer"
)

// consumerTag is unique per channel, which is all AMQP requires.
const consumerTag = "email-worker"

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env, helpers.WithLevel(cfg.LogLevel))

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return 0
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQAccountQueue == "" {
		logger.Error("RabbitMQ not configured")
		return 1
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Error("Mailgun not configured")
		return 1
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.WithError(err).Error("amqp dial")
		return 1
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.WithError(err).Error("amqp channel")
		return 1
	}
	defer func() { _ = ch.Close() }()

	// prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		logger.WithError(err).Error("qos")
		return 1
	}
	if err := helpers.DeclareQueue(ch, cfg.RabbitMQAccountQueue); err != nil {
		logger.WithError(err).Error("queue declare")
		return 1
	}

	msgs, err := ch.Consume(cfg.RabbitMQAccountQueue, consumerTag, false, false, false, false, nil)
	if err != nil {
		logger.WithError(err).Error("consume")
		return 1
	}

	d := &mailer.Dispatcher{
		Sender:      mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender, cfg.MailgunAPIBase),
		AppName:     cfg.AppName,
		CompanyName: cfg.CompanyName,
		SupportURL:  cfg.SupportURL,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			consume(d, logger, msg)
		}
	}()

	logger.WithField("queue", cfg.RabbitMQAccountQueue).Info("email worker listening")
	select {
	case <-done:
		// broker closed the channel or connection
		logger.Error("delivery channel closed, exiting")
		return 1
	case <-stop:
	}

	logger.Info("shutting down...")
	_ = ch.Cancel(consumerTag, false)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
	return 0
}

func consume(d *mailer.Dispatcher, logger *logrus.Logger, msg amqp.Delivery) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	err := d.Handle(ctx, msg.Body)
	switch mailer.Disposition(err) {
	case mailer.Ack:
		_ = msg.Ack(false)
	case mailer.Drop:
		logger.WithError(err).Warn("dropping account event")
		_ = msg.Nack(false, false)
	default:
		logger.WithError(err).Error("send failed, requeueing")
		_ = msg.Nack(false, true)
	}
}
