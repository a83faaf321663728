package utils

import (
	"fmt"
	"html"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	log "github.com/sirupsen/logrus"

	"filings/config"
)

// deliver hands a message to SendGrid; tests replace it.
var deliver = func(apiKey string, msg *mail.SGMailV3) error {
	resp, err := sendgrid.NewSendClient(apiKey).Send(msg)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid responded %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// Generic Send Email
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	return sendWith(config.AppConfig, toEmail, toName, subject, htmlBody)
}

// sendAsync captures the config before the goroutine starts.
func sendAsync(toEmail, toName, subject, htmlBody string) {
	cfg := config.AppConfig
	go sendWith(cfg, toEmail, toName, subject, htmlBody)
}

func sendWith(cfg *config.Config, toEmail, toName, subject, htmlBody string) error {
	entry := log.WithFields(log.Fields{"to": toEmail, "subject": subject})
	if cfg == nil || cfg.SendgridApiKey == "" {
		entry.Debug("SENDGRID_API_KEY not set, email skipped")
		return nil
	}

	from := mail.NewEmail(cfg.EmailName, cfg.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	msg := mail.NewSingleEmail(from, subject, to, subject, htmlBody)

	if err := deliver(cfg.SendgridApiKey, msg); err != nil {
		entry.WithError(err).Error("Error sending email")
		return err
	}
	entry.Info("Email sent")
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #0B3D91; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 22px; }
			.content { padding: 40px 30px; color: #1F2937; line-height: 1.6; }
			.info-box { background: #EEF2FF; padding: 15px; border-radius: 4px; border-left: 4px solid #0B3D91; margin: 20px 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
			<div class="footer">This is an automated message about your filing. Please do not reply.</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

func SendWelcomeEmail(email, name string) {
	sendAsync(email, name, "Welcome aboard", getEmailTemplate("Welcome", welcomeBody(name)))
}

func welcomeBody(name string) string {
	return fmt.Sprintf(`<h2>Welcome, %s</h2>
		<p>Your account is ready. Pick a registration to get started and save your progress at any step.</p>`, html.EscapeString(name))
}

func SendPaymentReceivedEmail(email, name, packageName string, amount float64, ticketID uint) {
	body := fmt.Sprintf(`<h2>Payment received</h2>
		<p>Dear %s, we received your payment for <strong>%s</strong>.</p>
		<div class="info-box">Amount: INR %.2f<br>Ticket: #%d</div>
		<p>You can now fill in the registration form. Your draft is saved as you go.</p>`,
		html.EscapeString(name), html.EscapeString(packageName), amount, ticketID)
	sendAsync(email, name, "Payment received", getEmailTemplate("Payment Received", body))
}

func SendTicketSubmittedEmail(email, name, title string, ticketID uint) {
	sendAsync(email, name, "Application submitted: "+title, getEmailTemplate("Application Submitted", submittedBody(name, title, ticketID)))
}

func submittedBody(name, title string, ticketID uint) string {
	return fmt.Sprintf(`<h2>Application submitted</h2>
		<p>Dear %s, your <strong>%s</strong> application has been submitted.</p>
		<div class="info-box">Ticket: #%d</div>
		<p>Our team will review the documents and keep you posted on each step.</p>`,
		html.EscapeString(name), html.EscapeString(title), ticketID)
}

func SendTaskListUpdatedEmail(email, name, title string, ticketID uint, pending int) {
	body := fmt.Sprintf(`<h2>Progress update</h2>
		<p>Dear %s, the task list for your <strong>%s</strong> filing was updated.</p>
		<div class="info-box">Ticket: #%d<br>Open tasks: %d</div>`,
		html.EscapeString(name), html.EscapeString(title), ticketID, pending)
	sendAsync(email, name, "Progress update: "+title, getEmailTemplate("Progress Update", body))
}
