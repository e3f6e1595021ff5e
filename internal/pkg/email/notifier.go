package email

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// sendTimeout bounds a single detached delivery
const sendTimeout = 30 * time.Second

// Notifier composes the account emails and delivers them on detached
// goroutines. Delivery failures are logged and never reach the caller.
type Notifier struct {
	sender      Sender
	logger      zerolog.Logger
	appName     string
	frontendURL string
	wg          sync.WaitGroup
}

// NewNotifier creates a new Notifier
func NewNotifier(sender Sender, appName, frontendURL string, logger zerolog.Logger) *Notifier {
	return &Notifier{
		sender:      sender,
		logger:      logger,
		appName:     appName,
		frontendURL: frontendURL,
	}
}

// Welcome notifies a newly registered teacher. No credentials are included.
func (n *Notifier) Welcome(toEmail, toName string) {
	subject := fmt.Sprintf("Welcome to %s", n.appName)
	text := fmt.Sprintf("Hello %s,\n\nYour %s account has been created. You can now log in with the email %s and the password you chose at registration.\n\nBest regards,\n%s",
		toName, n.appName, toEmail, n.appName)
	body := fmt.Sprintf(`<html><body><div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2 style="color: #333;">Welcome to %[1]s!</h2>
<p>Hello %[2]s,</p>
<p>Your account has been created. You can now log in with the email <strong>%[3]s</strong> and the password you chose at registration.</p>
<p>Best regards,<br>%[1]s</p>
</div></body></html>`, html.EscapeString(n.appName), html.EscapeString(toName), html.EscapeString(toEmail))

	n.dispatch(Message{To: toEmail, ToName: toName, Subject: subject, HTMLBody: body, TextBody: text})
}

// PasswordReset sends the single-use reset link
func (n *Notifier) PasswordReset(toEmail, toName, token string, validFor time.Duration) {
	link := ResetLink(n.frontendURL, toEmail, token)
	subject := fmt.Sprintf("%s - Password Reset", n.appName)
	text := fmt.Sprintf("Hello %s,\n\nUse the link below to choose a new password. It expires in %s and can be used once.\n\n%s\n\nIf you did not request a reset, ignore this email.",
		toName, validFor, link)
	body := fmt.Sprintf(`<html><body><div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2 style="color: #333;">Password reset</h2>
<p>Hello %[1]s,</p>
<p>Click the button below to choose a new password. The link expires in %[2]s and can be used once.</p>
<div style="text-align: center; margin: 30px 0;">
<a href="%[3]s" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Reset password</a>
</div>
<p>If you did not request a reset, ignore this email.</p>
</div></body></html>`, html.EscapeString(toName), validFor, html.EscapeString(link))

	n.dispatch(Message{To: toEmail, ToName: toName, Subject: subject, HTMLBody: body, TextBody: text})
}

// Wait blocks until every dispatched message has been attempted
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) dispatch(msg Message) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if err := n.sender.Send(ctx, msg); err != nil {
			n.logger.Error().Err(err).Str("toEmail", msg.To).Str("subject", msg.Subject).Msg("Failed to send email")
			return
		}
		n.logger.Info().Str("toEmail", msg.To).Str("subject", msg.Subject).Msg("Email sent")
	}()
}

// ResetLink builds the frontend URL a teacher follows to reset the password
func ResetLink(frontendURL, email, token string) string {
	q := url.Values{}
	q.Set("email", email)
	q.Set("token", token)
	return frontendURL + "/reset-password?" + q.Encode()
}
