package utils

import (
	"fmt"
	"log"

	"github.com/wneessen/go-mail"

	"verdant_back_end/internal/config"
)

// SendOTPEmail delivers a one-time code over SMTP. Callers are expected to
// have checked cfg.DemoOTP first; this always dials the configured server.
func SendOTPEmail(cfg *config.Config, to, code string) error {
	msg := mail.NewMsg()

	if err := msg.From(cfg.EmailFrom); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Your Verdant verification code")
	msg.SetBodyString(mail.TypeTextHTML, otpEmailHTML(code))

	client, err := mail.NewClient(cfg.SMTPHost,
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(cfg.SMTPUsername),
		mail.WithPassword(cfg.SMTPPassword),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Sending OTP email to", to)
	return client.DialAndSend(msg)
}

func otpEmailHTML(code string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<title>Verification code</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f4f9f4; padding: 20px;">
	<div style="max-width: 480px; margin: auto; background-color: white; padding: 24px; border-radius: 10px;">
		<h2 style="color: #2d6a4f;">Verdant</h2>
		<p>Hi,</p>
		<p>Your verification code is:</p>
		<p style="font-size: 28px; font-weight: bold; letter-spacing: 6px; color: #1b4332;">%s</p>
		<p style="color: #555;">The code is valid for 10 minutes. If you did not request it, you can ignore this email.</p>
	</div>
</body>
</html>`, code)
}
