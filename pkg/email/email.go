package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// OverdueInvoice is the per-invoice view rendered into a reminder email.
type OverdueInvoice struct {
	InvoiceNo string
	DueDate   string
	AmountDue string
}

// SendOverdueReminder sends a payment reminder listing a customer's overdue
// invoices with their outstanding amounts.
func (s *EmailService) SendOverdueReminder(toEmail, customerName string, invoices []OverdueInvoice) error {
	htmlContent, err := s.renderOverdueReminder(customerName, invoices)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := "Payment Reminder - FreshVeld Deliveries"
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

// renderOverdueReminder renders the overdue invoice reminder template
func (s *EmailService) renderOverdueReminder(customerName string, invoices []OverdueInvoice) (string, error) {
	tmpl, err := template.New("overdue_reminder").Parse(overdueReminderTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		CustomerName string
		Invoices     []OverdueInvoice
		AppName      string
	}{
		CustomerName: customerName,
		Invoices:     invoices,
		AppName:      "FreshVeld Deliveries",
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// overdueReminderTemplate is the HTML template for payment reminder emails
const overdueReminderTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Payment Reminder</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);">
                    <tr>
                        <td style="background: linear-gradient(135deg, #2f855a 0%, #276749 100%); padding: 40px 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 28px; font-weight: 600;">{{.AppName}}</h1>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 40px 30px;">
                            <h2 style="color: #1a1a2e; margin: 0 0 20px 0; font-size: 24px; font-weight: 600;">Payment Reminder</h2>
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0;">
                                Hello {{.CustomerName}},
                            </p>
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0;">
                                The following invoices on your account are past their due date:
                            </p>
                            <table role="presentation" style="width: 100%; border-collapse: collapse; margin: 0 0 30px 0;">
                                <tr>
                                    <th style="text-align: left; padding: 8px; border-bottom: 2px solid #e2e8f0; color: #1a1a2e;">Invoice</th>
                                    <th style="text-align: left; padding: 8px; border-bottom: 2px solid #e2e8f0; color: #1a1a2e;">Due Date</th>
                                    <th style="text-align: right; padding: 8px; border-bottom: 2px solid #e2e8f0; color: #1a1a2e;">Amount Due</th>
                                </tr>
                                {{range .Invoices}}
                                <tr>
                                    <td style="padding: 8px; border-bottom: 1px solid #e2e8f0; color: #4a5568;">{{.InvoiceNo}}</td>
                                    <td style="padding: 8px; border-bottom: 1px solid #e2e8f0; color: #4a5568;">{{.DueDate}}</td>
                                    <td style="padding: 8px; border-bottom: 1px solid #e2e8f0; color: #4a5568; text-align: right;">{{.AmountDue}}</td>
                                </tr>
                                {{end}}
                            </table>
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0;">
                                Payments can be made in cash on delivery, by card (Yoco) or by EFT.
                                If you have already paid, please disregard this message.
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`
