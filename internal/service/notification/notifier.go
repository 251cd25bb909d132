package notification

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/sarukeshwar2016/Inclusicity/pkg/logger"
)

// Sender delivers an outbound message to one recipient
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPConfig holds mail relay settings
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// SMTPSender delivers mail through a plain-auth SMTP relay
type SMTPSender struct {
	cfg SMTPConfig
}

// NewSMTPSender creates an SMTP sender
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		s.cfg.From, to, subject, body,
	))

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg)
}

// LogSender records outbound mail in the log instead of delivering it.
// Used when no mail relay is configured.
type LogSender struct {
	logger *logger.Logger
}

// NewLogSender creates a log-only sender
func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{logger: log}
}

func (s *LogSender) Send(to, subject, body string) error {
	s.logger.Info("Mail delivery skipped (mail disabled)",
		logger.String("to", to),
		logger.String("subject", subject),
	)
	return nil
}

// Notifier dispatches notifications asynchronously with bounded retries.
// Delivery failure is logged, never surfaced to the triggering operation.
type Notifier struct {
	sender      Sender
	logger      *logger.Logger
	maxAttempts int
	backoff     time.Duration
}

// NewNotifier creates a notifier with the retry policy (3 attempts, growing
// backoff between them).
func NewNotifier(sender Sender, log *logger.Logger) *Notifier {
	return &Notifier{
		sender:      sender,
		logger:      log,
		maxAttempts: 3,
		backoff:     10 * time.Second,
	}
}

// HelperVerified dispatches the verified-account email in the background
func (n *Notifier) HelperVerified(name, email string) {
	subject := "InclusiCity – Helper Account Verified"
	body := fmt.Sprintf(`Hello %s,

Congratulations!

Your helper account on InclusiCity has been verified by our team.
You can now log in and start accepting requests.

Thank you for supporting an inclusive city.

– InclusiCity Team
`, name)

	go n.deliver(email, subject, body)
}

// deliver retries the send up to maxAttempts times. Exposed to tests through
// the package; production callers go through the async entry points.
func (n *Notifier) deliver(to, subject, body string) {
	var err error
	for attempt := 1; attempt <= n.maxAttempts; attempt++ {
		if err = n.sender.Send(to, subject, body); err == nil {
			n.logger.Info("Notification sent",
				logger.String("to", to),
				logger.Int("attempt", attempt),
			)
			return
		}
		n.logger.Warn("Notification attempt failed",
			logger.String("to", to),
			logger.Int("attempt", attempt),
			logger.Err(err),
		)
		if attempt < n.maxAttempts {
			time.Sleep(time.Duration(attempt) * n.backoff)
		}
	}

	n.logger.Error("Notification delivery gave up",
		logger.String("to", to),
		logger.Int("attempts", n.maxAttempts),
		logger.Err(err),
	)
}
