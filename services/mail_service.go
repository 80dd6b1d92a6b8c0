package services

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"petshop-server/config"
)

// SendPasswordResetMail delivers the reset code to the admin's inbox. When
// SMTP is not configured the code is logged server-side instead so local
// setups can still complete the flow.
func SendPasswordResetMail(email, code string) error {
	cfg := config.AppConfig
	if !cfg.MailEnabled() {
		log.Printf("📧 SMTP not configured, reset code for %s: %s", email, code)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.SMTP.From)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Petshop admin password reset")
	m.SetBody("text/plain", fmt.Sprintf(
		"Your password reset code is %s.\n\nThe code expires in 10 minutes. If you did not request a reset you can ignore this mail.", code))

	d := gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reset mail: %w", err)
	}

	log.Printf("📧 Password reset mail sent to %s", email)
	return nil
}
