package service

import (
	"bytes"
	"context"
	"crypto/rand"
	"html/template"
	"math/big"
	"strconv"

	"github.com/styleshelf/storefront/internal/email"
)

const (
	licenseIDMin  = 1000000000
	licenseIDSpan = 9000000000

	emailSubject = "Payment Successful - StyleShelf"
)

// GenerateLicenseID returns a uniform random 10-digit decimal string
func GenerateLicenseID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(licenseIDSpan))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(licenseIDMin+n.Int64(), 10), nil
}

// Notification carries everything the purchase confirmation email embeds
type Notification struct {
	To          string
	PackageName string
	Amount      float64
	OrderID     string
	PaymentID   string
	DocumentURL *string
	LicenseID   string
}

// SendResult is the provider acknowledgement plus the license id that was sent
type SendResult struct {
	ProviderID string
	LicenseID  string
}

// EmailSender is interface for the transactional email provider
type EmailSender interface {
	Send(ctx context.Context, msg email.Message) (*email.SendResponse, error)
}

// NotificationService composes and sends purchase confirmation emails
type NotificationService struct {
	sender EmailSender
}

// NewNotificationService creates new NotificationService instance
func NewNotificationService(sender EmailSender) *NotificationService {
	return &NotificationService{sender: sender}
}

var purchaseTmpl = template.Must(template.New("purchase").Parse(purchaseTemplate))

const purchaseTemplate = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #3B82F6;">Payment Successful!</h2>
  <p>Thank you for your purchase. We will contact you shortly regarding the next steps.</p>

  <h3 style="margin-top: 20px;">Purchase Details:</h3>
  <ul style="list-style-type: none; padding-left: 0;">
    <li style="padding: 8px 0; border-bottom: 1px solid #eee;"><strong>Package:</strong> {{.PackageName}}</li>
    <li style="padding: 8px 0; border-bottom: 1px solid #eee;"><strong>Amount:</strong> &#8377;{{.Amount}}</li>
    <li style="padding: 8px 0; border-bottom: 1px solid #eee;"><strong>Order ID:</strong> {{.OrderID}}</li>
    <li style="padding: 8px 0; border-bottom: 1px solid #eee;"><strong>Payment Reference:</strong> {{.PaymentID}}</li>
  </ul>

  <div style="margin-top: 20px; padding: 15px; background-color: #f8f8f8; border: 1px solid #ddd; border-radius: 5px;">
    <h3 style="color: #3B82F6; margin-top: 0;">Your License Information</h3>
    <p>Please save this license ID for future reference and support. It proves your purchase authenticity.</p>
    <div style="background-color: #eee; padding: 10px; font-family: monospace; font-size: 18px; text-align: center; letter-spacing: 2px;">
      {{.LicenseID}}
    </div>
  </div>

  {{if .DocumentURL}}
  <div style="margin-top: 20px; padding: 15px; background-color: #f5f5f5; border-radius: 5px;">
    <h3 style="color: #3B82F6;">Your Purchase Document</h3>
    <p>Access your document using the link below:</p>
    <a href="{{.DocumentURL}}" style="display: inline-block; background-color: #3B82F6; color: white; padding: 10px 15px; text-decoration: none; border-radius: 5px; margin-top: 10px;">Download Document</a>
  </div>
  {{end}}

  <p style="margin-top: 20px;">If you have any questions, please don't hesitate to contact us.</p>

  <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; font-size: 12px; color: #666;">
    <p>&copy; 2024 StyleShelf. All rights reserved.</p>
  </div>
</div>`

// Send renders the purchase confirmation and posts it to the provider.
// A license id is generated when the notification does not carry one.
func (ns *NotificationService) Send(ctx context.Context, n Notification) (*SendResult, error) {
	if n.LicenseID == "" {
		licenseID, err := GenerateLicenseID()
		if err != nil {
			return nil, err
		}
		n.LicenseID = licenseID
	}

	var body bytes.Buffer
	if err := purchaseTmpl.Execute(&body, n); err != nil {
		return nil, err
	}

	resp, err := ns.sender.Send(ctx, email.Message{
		To:      n.To,
		Subject: emailSubject,
		HTML:    body.String(),
	})
	if err != nil {
		return nil, err
	}

	return &SendResult{ProviderID: resp.ID, LicenseID: n.LicenseID}, nil
}
