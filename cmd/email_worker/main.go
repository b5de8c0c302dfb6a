package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"propertypro/internal/config"
	"propertypro/internal/notify"
)

// The worker drains the booking email queue and delivers through Mailgun.
// The API stays up whether or not this process runs; jobs wait in the queue.
func main() {
	config.Load()

	if !config.AppEnv.MailSendEnabled {
		logrus.Info("MAIL_SEND_ENABLED=false; email worker disabled")
		return
	}
	if config.AppEnv.RabbitMQURL == "" {
		logrus.Fatal("RABBITMQ_URL is required")
	}
	if config.AppEnv.MailgunDomain == "" || config.AppEnv.MailgunAPIKey == "" || config.AppEnv.MailgunSender == "" {
		logrus.Fatal("Mailgun not configured")
	}

	conn, err := amqp.Dial(config.AppEnv.RabbitMQURL)
	if err != nil {
		logrus.WithError(err).Fatal("amqp dial")
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logrus.WithError(err).Fatal("amqp channel")
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(16, 0, false); err != nil {
		logrus.WithError(err).Fatal("qos")
	}
	if _, err := ch.QueueDeclare(config.AppEnv.EmailQueue, true, false, false, false, nil); err != nil {
		logrus.WithError(err).Fatal("queue declare")
	}

	msgs, err := ch.Consume(config.AppEnv.EmailQueue, "", false, false, false, false, nil)
	if err != nil {
		logrus.WithError(err).Fatal("consume")
	}

	mailer := notify.NewMailgun(
		config.AppEnv.MailgunDomain,
		config.AppEnv.MailgunAPIKey,
		config.AppEnv.MailgunSender,
	)
	ctx := context.Background()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var job notify.EmailJob
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				logrus.WithError(err).Warn("bad message")
				_ = msg.Nack(false, false)
				continue
			}

			subject, html, err := notify.Render(job.Template, job.Data)
			if err != nil {
				logrus.WithError(err).WithField("template", job.Template).Warn("render failed")
				_ = msg.Nack(false, false)
				continue
			}

			sendCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			if err := mailer.Send(sendCtx, job.To, subject, html); err != nil {
				cancel()
				logrus.WithError(err).WithField("to", job.To).Warn("send failed, requeueing")
				_ = msg.Nack(false, true)
				continue
			}
			cancel()
			_ = msg.Ack(false)
			logrus.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Info("email sent")
		}
		close(done)
	}()

	logrus.WithField("queue", config.AppEnv.EmailQueue).Info("email worker listening")
	<-stop
	logrus.Info("shutting down")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
