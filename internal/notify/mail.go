// Package notify sends best-effort notifications about new contact messages.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/ahhmedWalid1/anas-haloul-website/internal/model"
)

// MailConfig holds the outbound SMTP settings.
type MailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	To       string
}

// Enabled reports whether enough settings are present to send mail.
func (c MailConfig) Enabled() bool {
	return c.Host != "" && c.Username != "" && c.Password != ""
}

// SendFunc delivers one message. It must give up when ctx is done.
type SendFunc func(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer emails each new contact message to the campaign inbox.
type Mailer struct {
	cfg  MailConfig
	send SendFunc
	loc  *time.Location
}

// NewMailer creates a Mailer sending over SMTP with bounded timeouts. Dates in the mail
// body are shown in loc.
func NewMailer(cfg MailConfig, loc *time.Location) *Mailer {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	if cfg.To == "" {
		cfg.To = cfg.From
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Mailer{cfg: cfg, send: sendMail, loc: loc}
}

var mailBody = template.Must(template.New("contact").Parse(`<h2>رسالة جديدة من موقع الحملة</h2>
<p><strong>الاسم:</strong> {{.Name}}</p>
<p><strong>الهاتف:</strong> {{.Phone}}</p>
<p><strong>الرسالة:</strong></p>
<p>{{range $i, $line := .Lines}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>
<p><strong>التاريخ:</strong> {{.Date}}</p>
`))

type mailData struct {
	Name  string
	Phone string
	Lines []string
	Date  string
}

// NotifyContact sends one HTML mail describing msg.
func (m *Mailer) NotifyContact(ctx context.Context, msg *model.ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := m.render(msg)
	if err != nil {
		return err
	}
	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := m.send(ctx, addr, auth, m.cfg.From, []string{m.cfg.To}, body); err != nil {
		return fmt.Errorf("notify: send mail: %w", err)
	}
	return nil
}

func (m *Mailer) render(msg *model.ContactMessage) ([]byte, error) {
	date := msg.Date
	if t, err := time.Parse(time.RFC3339, msg.Date); err == nil {
		date = t.In(m.loc).Format("2006-01-02 15:04")
	}

	var html bytes.Buffer
	err := mailBody.Execute(&html, mailData{
		Name:  msg.Name,
		Phone: msg.Phone,
		Lines: strings.Split(msg.Message, "\n"),
		Date:  date,
	})
	if err != nil {
		return nil, fmt.Errorf("notify: render mail: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&buf, "To: %s\r\n", m.cfg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.BEncoding.Encode("utf-8", "رسالة جديدة من "+msg.Name))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	buf.WriteString("\r\n")
	buf.Write(html.Bytes())
	return buf.Bytes(), nil
}
