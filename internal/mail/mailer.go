// Package mail delivers the notification emails for contact-form intake.
// Delivery is always best-effort; callers log failures and move on.
package mail

import (
	"context"
	"fmt"
	"html"
	"mime"
	"strings"
	"time"

	"github.com/aironlab/backend/internal/events"
)

type Message struct {
	From    string
	To      string
	Subject string
	Text    string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, m Message) error
}

type Noop struct{}

func (Noop) Send(context.Context, Message) error { return nil }

var _ Mailer = (*Noop)(nil)

// AdminNotification builds the email sent to the site admin about a new
// contact request.
func AdminNotification(from, to string, p events.ContactReceivedPayload) Message {
	phone := p.Phone
	if phone == "" {
		phone = "Не указан"
	}

	var b strings.Builder
	b.WriteString("<h2>Новая заявка с сайта AIronLab</h2>\n<hr>\n")
	fmt.Fprintf(&b, "<p><strong>Имя:</strong> %s</p>\n", html.EscapeString(p.Name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>\n", html.EscapeString(p.Email))
	fmt.Fprintf(&b, "<p><strong>Телефон:</strong> %s</p>\n", html.EscapeString(phone))
	fmt.Fprintf(&b, "<p><strong>Тема:</strong> %s</p>\n<hr>\n", html.EscapeString(p.Subject))
	b.WriteString("<p><strong>Сообщение:</strong></p>\n")
	fmt.Fprintf(&b, "<p>%s</p>\n<hr>\n", strings.ReplaceAll(html.EscapeString(p.Message), "\n", "<br>"))
	fmt.Fprintf(&b, "<p><small>ID заявки: %d</small></p>\n", p.RequestID)
	fmt.Fprintf(&b, "<p><small>Дата: %s</small></p>\n", p.CreatedAt.Format(time.RFC1123))
	if p.IPAddress != "" {
		fmt.Fprintf(&b, "<p><small>IP: %s</small></p>\n", html.EscapeString(p.IPAddress))
	}

	return Message{
		From:    from,
		To:      to,
		Subject: "Новая заявка: " + p.Subject,
		Text:    fmt.Sprintf("Новая заявка от %s (%s): %s", p.Name, p.Email, p.Message),
		HTML:    b.String(),
	}
}

// SenderConfirmation builds the optional acknowledgement sent back to the
// person who submitted the form.
func SenderConfirmation(from string, p events.ContactReceivedPayload) Message {
	var b strings.Builder
	b.WriteString("<h2>Спасибо за обращение!</h2>\n")
	b.WriteString("<p>Мы получили вашу заявку и свяжемся с вами в ближайшее время.</p>\n<hr>\n")
	b.WriteString("<p><strong>Ваше сообщение:</strong></p>\n")
	fmt.Fprintf(&b, "<p>%s</p>\n<hr>\n", strings.ReplaceAll(html.EscapeString(p.Message), "\n", "<br>"))
	b.WriteString("<p>С уважением,<br>Команда AIronLab</p>\n")

	return Message{
		From:    from,
		To:      p.Email,
		Subject: "Подтверждение получения заявки - AIronLab",
		HTML:    b.String(),
	}
}

func encodeHeader(s string) string {
	return mime.QEncoding.Encode("utf-8", s)
}
