package mailing

import (
	"io"
	"strconv"

	"foodgram/internal/utils"

	"gopkg.in/gomail.v2"
)

type (
	MailConfig struct {
		AppURL       string
		SMTPHost     string
		SMTPPort     string
		SMTPSender   string
		SMTPEmail    string
		SMTPPassword string
	}

	Attachment struct {
		FileName    string
		ContentType string
		Body        []byte
	}

	Mailer interface {
		SendMail(toEmail string, subject string, body string, attachments ...Attachment) error
	}

	smtpMailer struct {
		config MailConfig
	}
)

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

func NewMailer() Mailer {
	return &smtpMailer{config: LoadMailConfig()}
}

func (m *smtpMailer) SendMail(toEmail string, subject string, body string, attachments ...Attachment) error {
	mailer := BuildMessage(m.config, toEmail, subject, body, attachments...)

	port, err := strconv.Atoi(m.config.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		m.config.SMTPHost,
		port,
		m.config.SMTPEmail,
		m.config.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}

func BuildMessage(config MailConfig, toEmail string, subject string, body string, attachments ...Attachment) *gomail.Message {
	mailer := gomail.NewMessage()
	mailer.SetAddressHeader("From", config.SMTPEmail, config.SMTPSender)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	for _, attachment := range attachments {
		content := attachment.Body
		mailer.Attach(
			attachment.FileName,
			gomail.SetHeader(map[string][]string{"Content-Type": {attachment.ContentType}}),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
		)
	}

	return mailer
}
