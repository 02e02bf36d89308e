package utils

import (
	"errors"
	"strings"

	"gopkg.in/gomail.v2"
)

// Mailer delivers password reset codes.
type Mailer interface {
	SendResetCode(email, code string) error
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

const resetEmailHTML = `<!DOCTYPE html>
<html>
<head>
	<title>Password Reset Code</title>
	<style>
		body { font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0; }
		.container { background-color: #ffffff; margin: 20px auto; padding: 20px; border-radius: 8px; max-width: 600px; }
		h1 { color: #333333; }
		p { color: #666666; }
		.code { font-weight: bold; color: #007bff; }
	</style>
</head>
<body>
	<div class="container">
		<h1>MediCore password reset</h1>
		<p>Your password reset code is:</p>
		<p class="code">{{CODE}}</p>
		<p>The code expires in 15 minutes. If you did not request a password reset, please ignore this email.</p>
	</div>
</body>
</html>`

// NewResetCodeMessage builds the reset email.
func NewResetCodeMessage(from, to, code string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Password Reset Code")
	m.SetBody("text/plain", "Your password reset code is: "+code)
	m.AddAlternative("text/html", strings.Replace(resetEmailHTML, "{{CODE}}", code, 1))
	return m
}

func (s *SMTPMailer) SendResetCode(email, code string) error {
	if s.Host == "" {
		return errors.New("SMTP host is not configured")
	}
	from := s.From
	if from == "" {
		from = s.Username
	}
	d := gomail.NewDialer(s.Host, s.Port, s.Username, s.Password)
	return d.DialAndSend(NewResetCodeMessage(from, email, code))
}
