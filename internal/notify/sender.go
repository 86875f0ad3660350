package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/Wezylnia/GymSystem-sub001/internal/events"
)

type Message struct {
	To      string
	Name    string
	Subject string
	Body    string
}

type Sender interface {
	Send(ctx context.Context, m Message) error
}

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Pass     string
	From     string
	FromName string
}

type SMTPSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(_ context.Context, m Message) error {
	var auth smtp.Auth
	if s.cfg.User != "" && s.cfg.Pass != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	}

	addr := s.cfg.Host + ":" + s.cfg.Port
	return smtp.SendMail(addr, auth, s.cfg.From, []string{m.To}, s.compose(m))
}

func (s *SMTPSender) compose(m Message) []byte {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From)
	message += fmt.Sprintf("To: %s\r\n", m.To)
	message += fmt.Sprintf("Subject: %s\r\n", m.Subject)
	message += "\r\n" + m.Body
	return []byte(message)
}

const whenLayout = "Mon, Jan 2, 2006 at 15:04"

// Render builds the e-mail a member receives for e.
func Render(e events.Event, m Member) Message {
	when := e.AppointmentDate.Format(whenLayout)
	msg := Message{To: m.Email, Name: m.Name}

	switch e.Type {
	case events.AppointmentBooked:
		msg.Subject = "Appointment requested"
		msg.Body = fmt.Sprintf(`Hi %s,

We received your booking for %s (%d minutes).
The front desk will confirm it shortly.

- Gym Front Desk`, m.Name, when, e.DurationMinutes)
	case events.AppointmentConfirmed:
		msg.Subject = "Appointment confirmed"
		msg.Body = fmt.Sprintf(`Hi %s,

Your appointment on %s (%d minutes) is confirmed.

See you at the gym!

- Gym Front Desk`, m.Name, when, e.DurationMinutes)
	case events.AppointmentCancelled:
		msg.Subject = "Appointment cancelled"
		msg.Body = fmt.Sprintf(`Hi %s,

Your appointment on %s has been cancelled.
%s
- Gym Front Desk`, m.Name, when, reasonLine(e.Reason))
	default:
		msg.Subject = "Appointment update"
		msg.Body = fmt.Sprintf("Hi %s,\n\nYour appointment on %s was updated.\n\n- Gym Front Desk", m.Name, when)
	}
	return msg
}

func reasonLine(reason string) string {
	if reason == "" {
		return ""
	}
	return "Reason: " + reason + "\n"
}
