package utils

import (
	"fmt"
	"log"
	"paperscan/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendExtractionStatusEmail notifies the admin address when an extraction
// set finishes. Best effort: failures are logged and never block the
// pipeline.
func SendExtractionStatusEmail(setType string, setID uint, status, errorMessage string) {
	if config.AppConfig.SendGridApiKey == "" || config.AppConfig.AdminEmail == "" {
		return
	}

	subject := fmt.Sprintf("PaperScan: %s set #%d %s", setType, setID, status)

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333;">Extraction %s</h2>
					<p style="font-size: 15px; color: #555555;">The %s set #%d finished with status <b>%s</b>.</p>
					<p style="font-size: 13px; color: #999999;">%s</p>
				</div>
			</body>
		</html>
	`, status, setType, setID, status, errorMessage)

	from := mail.NewEmail("PaperScan", config.AppConfig.EmailSender)
	to := mail.NewEmail("Admin", config.AppConfig.AdminEmail)
	message := mail.NewSingleEmail(from, subject, to, subject, body)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Failed to send extraction status email: %v", err)
		return
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected extraction status email: %d %s", resp.StatusCode, resp.Body)
	}
}
