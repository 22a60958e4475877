package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

var (
	emailFrom     = os.Getenv("EMAIL_FROM")
	emailPassword = os.Getenv("EMAIL_PASSWORD")
	smtpHost      = os.Getenv("SMTP_HOST")
	smtpPort      = os.Getenv("SMTP_PORT")
	companyName   = "Gestão de Frota"
	baseURL       = os.Getenv("BASE_URL")
)

// Common header template for all emails
const emailHeader = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="text-align: center; margin-bottom: 30px; background-color: #f9f9f9; padding: 20px;">
			<h2 style="color: #1565C0; margin: 0;">Gestão de Frota</h2>
		</div>
`

// Common footer template for all emails
const emailFooter = `
		<div style="text-align: center; margin-top: 20px; font-size: 12px; color: #666; border-top: 1px solid #eee; padding-top: 20px;">
			<p>This is an automated message, please do not reply to this email.</p>
		</div>
	</body>
</html>
`

func sendEmail(to []string, subject, body string) error {
	if emailFrom == "" || emailPassword == "" || smtpHost == "" || smtpPort == "" {
		return fmt.Errorf("email configuration not set")
	}

	// Headers
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", companyName, emailFrom)
	headers["To"] = strings.Join(to, ",")
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	// Build message
	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + body

	// Authentication
	auth := smtp.PlainAuth("", emailFrom, emailPassword, smtpHost)

	// Send email
	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, emailFrom, to, []byte(message))
	if err != nil {
		log.Printf("Failed to send email: %v", err)
		return err
	}

	log.Printf("Successfully sent email to recipients: %v", to)
	return nil
}

// ExpiryDigestItem is one row of the daily document-expiry digest.
type ExpiryDigestItem struct {
	TruckPlate    string
	DocumentType  string
	Filename      string
	ExpiryDate    string
	Status        string
	DaysRemaining *int
}

// SendExpiryDigestEmail sends operators the daily digest of expired and
// soon-to-expire vehicle documents.
func SendExpiryDigestEmail(to []string, items []ExpiryDigestItem) error {
	if len(items) == 0 {
		return nil
	}

	rows := ""
	for _, item := range items {
		days := "-"
		if item.DaysRemaining != nil {
			days = fmt.Sprintf("%d", *item.DaysRemaining)
		}
		rows += fmt.Sprintf(`
				<tr>
					<td style="padding: 8px; border-bottom: 1px solid #eee;">%s</td>
					<td style="padding: 8px; border-bottom: 1px solid #eee;">%s</td>
					<td style="padding: 8px; border-bottom: 1px solid #eee;">%s</td>
					<td style="padding: 8px; border-bottom: 1px solid #eee;">%s</td>
					<td style="padding: 8px; border-bottom: 1px solid #eee;">%s</td>
					<td style="padding: 8px; border-bottom: 1px solid #eee;">%s</td>
				</tr>`,
			item.TruckPlate, item.DocumentType, item.Filename, item.ExpiryDate, item.Status, days)
	}

	subject := fmt.Sprintf("Documentos vencendo - %d pendências", len(items))
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Documentos vencidos ou próximos do vencimento</h1>
					<table style="width: 100%%; border-collapse: collapse;">
						<tr style="background-color: #eee;">
							<th style="padding: 8px; text-align: left;">Placa</th>
							<th style="padding: 8px; text-align: left;">Tipo</th>
							<th style="padding: 8px; text-align: left;">Arquivo</th>
							<th style="padding: 8px; text-align: left;">Validade</th>
							<th style="padding: 8px; text-align: left;">Status</th>
							<th style="padding: 8px; text-align: left;">Dias</th>
						</tr>%s
					</table>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s/documentos" style="background-color: #1565C0; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">Ver documentos</a>
					</div>
				</div>`+emailFooter,
		rows, baseURL)

	return sendEmail(to, subject, body)
}
