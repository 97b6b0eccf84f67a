package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/mail"
	"net/url"
	"time"

	"github.com/dajohi/goemail"
	"github.com/platyfa/platyfa-api/internal/config"
	log "github.com/sirupsen/logrus"
)

// Client sends transactional and promotional email from a preset address.
// Mail is disabled when SMTP credentials are missing; sends then become
// logged no-ops so local development works without a mail server.
type Client struct {
	smtp        *goemail.SMTP
	mailName    string
	mailAddress string
	disabled    bool

	// sendDelay is the pause between consecutive Broadcast sends, honoring
	// the provider's rate limit.
	sendDelay time.Duration
}

// NewClient builds an SMTP client from configuration.
func NewClient(cfg config.SMTPConfig, sendDelay time.Duration) (*Client, error) {
	if cfg.Host == "" || cfg.Username == "" || cfg.Password == "" {
		log.Info("mail: disabled, smtp credentials not configured")
		return &Client{disabled: true, sendDelay: sendDelay}, nil
	}

	h := fmt.Sprintf("smtps://%v:%v@%v", cfg.Username, cfg.Password, cfg.Host)
	u, err := url.Parse(h)
	if err != nil {
		return nil, fmt.Errorf("mail: parse smtp host: %w", err)
	}

	addr, err := mail.ParseAddress(cfg.From)
	if err != nil {
		return nil, fmt.Errorf("mail: parse from address: %w", err)
	}

	smtp, err := goemail.NewSMTP(u.String(), &tls.Config{
		InsecureSkipVerify: cfg.SkipVerify,
	})
	if err != nil {
		return nil, fmt.Errorf("mail: smtp setup: %w", err)
	}

	log.Infof("mail: host smtps://%v:[password]@%v from %v", cfg.Username, cfg.Host, addr.Address)
	return &Client{
		smtp:        smtp,
		mailName:    addr.Name,
		mailAddress: addr.Address,
		sendDelay:   sendDelay,
	}, nil
}

// IsEnabled reports whether the mail server is configured.
func (c *Client) IsEnabled() bool {
	return !c.disabled
}

// Send delivers a single HTML email to one recipient.
func (c *Client) Send(to, subject, htmlBody string) error {
	if c.disabled {
		log.Debugf("mail: disabled, dropping %q to %s", subject, to)
		return nil
	}

	msg := goemail.NewHTMLMessage(c.mailAddress, subject, htmlBody)
	msg.SetName(c.mailName)
	msg.AddTo(to)
	return c.smtp.Send(msg)
}

// Broadcast delivers the same HTML email to each recipient one at a time,
// pausing sendDelay between sends. A failed recipient is logged and skipped;
// the rest of the batch still goes out. It returns the number of successful
// sends and stops early only when ctx is done.
func (c *Client) Broadcast(ctx context.Context, recipients []string, subject, htmlBody string) (int, error) {
	sent := 0
	for i, to := range recipients {
		if i > 0 && c.sendDelay > 0 {
			select {
			case <-ctx.Done():
				return sent, ctx.Err()
			case <-time.After(c.sendDelay):
			}
		}
		if err := c.Send(to, subject, htmlBody); err != nil {
			log.WithError(err).Errorf("mail: broadcast to %s failed", to)
			continue
		}
		sent++
	}
	return sent, nil
}
