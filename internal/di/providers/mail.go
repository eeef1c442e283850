package providers

import (
	"github.com/samber/do/v2"

	"github.com/yamdb/yamdb-server/internal/config"
	"github.com/yamdb/yamdb-server/internal/logger"
	"github.com/yamdb/yamdb-server/internal/mail"
)

// ProvideMailer provides the outbound mail transport behind a circuit breaker.
func ProvideMailer(i do.Injector) (*mail.BreakerSender, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	var transport mail.Sender
	switch cfg.Mail.Backend {
	case config.MailSMTP:
		smtp, err := mail.NewSMTPSender(mail.SMTPConfig{
			Host:     cfg.Mail.SMTP.Host,
			Port:     cfg.Mail.SMTP.Port,
			Username: cfg.Mail.SMTP.Username,
			Password: cfg.Mail.SMTP.Password,
			TLS:      cfg.Mail.SMTP.TLS,
			Timeout:  cfg.Mail.SMTP.Timeout,
		})
		if err != nil {
			return nil, err
		}
		transport = smtp
		log.Info("SMTP mail transport configured", "host", cfg.Mail.SMTP.Host, "port", cfg.Mail.SMTP.Port)
	default:
		transport = mail.NewLogSender(log.Logger)
		log.Info("Mail is written to the log")
	}

	return mail.NewBreakerSender(transport, mail.BreakerConfig{
		MaxFailures: cfg.Mail.Breaker.MaxFailures,
		OpenTimeout: cfg.Mail.Breaker.OpenTimeout,
	}, log.Logger), nil
}
