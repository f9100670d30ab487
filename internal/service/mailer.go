// File: internal/service/mailer.go
package service

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// Mailer 發送站內通知信，測試可替換 FakeMailer
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type FakeMailer struct {
	SendFn func(to, subject, htmlBody string) error
}

func (f *FakeMailer) Send(to, subject, htmlBody string) error {
	if f.SendFn != nil {
		return f.SendFn(to, subject, htmlBody)
	}
	panic("unexpected Send")
}

// smtpMailer 以 gomail 寄送，連線參數取自 SMTP_* 環境變數
type smtpMailer struct {
	host   string
	port   int
	user   string
	pass   string
	sender string
}

// gomailDialAndSend 包裝 gomail 寄送流程，測試可覆寫此變數
var gomailDialAndSend = func(host string, port int, user, pass string, m *gomail.Message) error {
	d := gomail.NewDialer(host, port, user, pass)
	return d.DialAndSend(m)
}

// NewSMTPMailer 依環境變數建立 SMTP 寄件器
func NewSMTPMailer() (Mailer, error) {
	host := os.Getenv("SMTP_HOST")
	user := os.Getenv("SMTP_USER")
	if host == "" || user == "" {
		return nil, fmt.Errorf("SMTP configuration is missing")
	}
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	return &smtpMailer{
		host:   host,
		port:   port,
		user:   user,
		pass:   os.Getenv("SMTP_PASS"),
		sender: os.Getenv("SMTP_SENDER"),
	}, nil
}

func (s *smtpMailer) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.sender)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return gomailDialAndSend(s.host, s.port, s.user, s.pass, m)
}

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`
<p>Bonjour,</p>
<p>Merci de confirmer votre adresse mail en cliquant sur le lien ci-dessous.</p>
<p><a href="{{.URL}}">Confirmer mon adresse</a></p>
<p>Ce lien expire dans {{.TTLHours}} heures.</p>
<p>Bien-Être</p>
`))

// RenderConfirmationEmail 產生註冊確認信的 HTML 內容
func RenderConfirmationEmail(verificationURL string, ttlHours int) (string, error) {
	var buf bytes.Buffer
	err := confirmationTemplate.Execute(&buf, map[string]any{
		"URL":      verificationURL,
		"TTLHours": ttlHours,
	})
	if err != nil {
		return "", fmt.Errorf("RenderConfirmationEmail: %w", err)
	}
	return buf.String(), nil
}
