package utils

import (
	"bytes"
	"errors"
	"log"
	"os"
	"text/template"

	brevo "github.com/sendinblue/APIv3-go-library/v2/lib"
)

// SendOrderConfirmation emails the customer after checkout.
func SendOrderConfirmation(email, name, orderID string, totalAmount float64) error {
	// Get Brevo API Key from environment
	apiKey := os.Getenv("BREVO_API_KEY")
	if apiKey == "" {
		return errors.New("brevo API Key not found in environment")
	}

	// Set up Brevo API client
	cfg := brevo.NewConfiguration()
	cfg.AddDefaultHeader("api-key", apiKey)
	client := brevo.NewAPIClient(cfg)

	// Read HTML content from file
	htmlFilePath := "utils/html/order_confirmation.html"
	emailTemplate, err := os.ReadFile(htmlFilePath)
	if err != nil {
		log.Printf("Error reading HTML file: %v", err)
		return err
	}

	// Parse the HTML content as a template
	tmpl, err := template.New("emailTemplate").Parse(string(emailTemplate))
	if err != nil {
		log.Printf("Error parsing HTML template: %v", err)
		return err
	}

	data := map[string]interface{}{
		"Name":        name,
		"OrderID":     orderID,
		"TotalAmount": totalAmount,
	}

	// Use bytes.Buffer to capture the output of the template execution
	var bodyContent bytes.Buffer
	if err := tmpl.Execute(&bodyContent, data); err != nil {
		log.Printf("Error executing template: %v", err)
		return err
	}

	sender := &brevo.SendSmtpEmailSender{
		Name:  "Baúl de Moda",
		Email: "pedidos@bauldemoda.com.ar",
	}

	to := []brevo.SendSmtpEmailTo{
		{Name: name, Email: email},
	}

	emailRequest := &brevo.SendSmtpEmail{
		Sender:      sender,
		To:          to,
		Subject:     "¡Gracias por tu compra!",
		HtmlContent: bodyContent.String(),
	}

	// Send email using Brevo API
	_, resp, err := client.TransactionalEmailsApi.SendTransacEmail(nil, *emailRequest)
	if err != nil {
		log.Printf("Error while sending email: %v", err)
		return err
	}

	log.Printf("Email sent successfully! Response: %v", resp)
	return nil
}
