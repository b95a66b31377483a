package utils

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

func smtpDialer() *gomail.Dialer {
	port := 465
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}
	return gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASS"),
	)
}

// SendMail delivers one plain-text message. Failures are logged and
// returned; callers decide whether a failed notice is fatal.
func SendMail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_SENDER"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := smtpDialer().DialAndSend(m); err != nil {
		log.Printf("Failed to send mail to %s: %v", to, err)
		return err
	}
	return nil
}
