package mail

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional HTML email over SMTP. When credentials are
// not configured every send becomes a logged no-op, so local setups work
// without an SMTP account.
type Mailer struct {
	host        string
	port        int
	user        string
	password    string
	fromName    string
	fromEmail   string
	frontendURL string
}

func NewMailer(host string, port int, user, password, fromName, fromEmail, frontendURL string) *Mailer {
	return &Mailer{
		host:        host,
		port:        port,
		user:        user,
		password:    password,
		fromName:    fromName,
		fromEmail:   fromEmail,
		frontendURL: frontendURL,
	}
}

func (m *Mailer) SendWelcome(name, email string) {
	body := render(welcomeTmpl, struct {
		UserName      string
		DashboardLink string
	}{name, m.frontendURL + "/dashboard"})
	m.send(email, welcomeSubject, body)
}

func (m *Mailer) SendPasswordReset(name, email, token string) {
	body := render(passwordResetTmpl, struct {
		UserName  string
		ResetLink string
	}{name, fmt.Sprintf("%s/reset-password?token=%s", m.frontendURL, token)})
	m.send(email, passwordResetSubject, body)
}

func (m *Mailer) SendAnalysisComplete(name, email, businessInput string, frameworks int, confidence float64, models int) {
	body := render(analysisCompleteTmpl, struct {
		UserName        string
		BusinessInput   string
		FrameworksCount int
		ConfidencePct   int
		ModelCount      int
		DashboardLink   string
	}{name, businessInput, frameworks, int(confidence * 100), models, m.frontendURL + "/dashboard"})
	m.send(email, analysisCompleteSubject, body)
}

func (m *Mailer) send(to, subject, body string) {
	if m.user == "" || m.password == "" {
		log.Printf("email credentials not configured, skipping send to %s", to)
		return
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.fromEmail, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.host, m.port, m.user, m.password)
	if err := d.DialAndSend(msg); err != nil {
		log.Printf("failed to send email to %s: %v", to, err)
		return
	}
	log.Printf("email sent to %s", to)
}
