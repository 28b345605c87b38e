// Package notifications sends transactional email for orders and the
// contact form. An unconfigured provider is a silent no-op, never an
// error: the storefront must keep selling while email is being set up.
package notifications

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/wildwestwallart/storefront-backend/internal/cart"
	"github.com/wildwestwallart/storefront-backend/pkg/config"
	pkgerrors "github.com/wildwestwallart/storefront-backend/pkg/errors"
	"github.com/wildwestwallart/storefront-backend/pkg/logger"
)

const deliveryLeadBusinessDays = 10

// Sender dispatches a built message to the provider.
type Sender interface {
	Send(ctx context.Context, message *mail.SGMailV3) (int, error)
}

type sendgridSender struct {
	client *sendgrid.Client
}

// NewSendgridSender builds the production Sender.
func NewSendgridSender(apiKey string) Sender {
	return &sendgridSender{client: sendgrid.NewSendClient(apiKey)}
}

func (s *sendgridSender) Send(ctx context.Context, message *mail.SGMailV3) (int, error) {
	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return 0, err
	}
	return response.StatusCode, nil
}

// Service sends the storefront's transactional email. Every method reports
// whether a message was actually dispatched; false with a nil error means
// the provider is not configured yet.
type Service interface {
	Ready() bool
	SendOrderConfirmation(ctx context.Context, customer Customer, order cart.CheckoutPayload) (bool, error)
	SendAdminNotification(ctx context.Context, customer Customer, order cart.CheckoutPayload) (bool, error)
	SendOrderProcessed(ctx context.Context, customer Customer, order cart.CheckoutPayload) (bool, error)
	SendContactEmail(ctx context.Context, message ContactMessage) (bool, error)
	SendTest(ctx context.Context, to string) (bool, error)
}

type service struct {
	sender Sender
	cfg    config.EmailConfig
	logg   *logger.Logger
	now    func() time.Time
}

func NewService(sender Sender, cfg config.EmailConfig, logg *logger.Logger) (Service, error) {
	if sender == nil {
		return nil, fmt.Errorf("email sender required")
	}
	return &service{sender: sender, cfg: cfg, logg: logg, now: time.Now}, nil
}

func (s *service) Ready() bool {
	return s.cfg.Ready()
}

func (s *service) SendOrderConfirmation(ctx context.Context, customer Customer, order cart.CheckoutPayload) (bool, error) {
	subject := fmt.Sprintf("Order Confirmation - %s", order.OrderRef)
	body := &strings.Builder{}
	fmt.Fprintf(body, "Hi %s,\n\n", customer.Name)
	fmt.Fprintf(body, "Thank you for your order! Your order reference is %s.\n\n", order.OrderRef)
	writeOrderLines(body, order)
	fmt.Fprint(body, "\nWe'll email you again once your prints are on their way.\n")
	return s.send(ctx, "order_confirmation", customer.Email, customer.Name, subject, body.String())
}

func (s *service) SendAdminNotification(ctx context.Context, customer Customer, order cart.CheckoutPayload) (bool, error) {
	subject := fmt.Sprintf("New Order %s from %s", order.OrderRef, customer.Name)
	body := &strings.Builder{}
	fmt.Fprintf(body, "New order placed by %s <%s>.\n\n", customer.Name, customer.Email)
	writeOrderLines(body, order)
	return s.send(ctx, "admin_notification", s.cfg.AdminEmail, "", subject, body.String())
}

// SendOrderProcessed tells the customer their prints entered production,
// with an estimated delivery ten business days out.
func (s *service) SendOrderProcessed(ctx context.Context, customer Customer, order cart.CheckoutPayload) (bool, error) {
	estimated := addBusinessDays(s.now(), deliveryLeadBusinessDays)
	subject := fmt.Sprintf("Your Order %s Is Being Printed", order.OrderRef)
	body := &strings.Builder{}
	fmt.Fprintf(body, "Hi %s,\n\n", customer.Name)
	fmt.Fprintf(body, "Your order %s is now in production.\n", order.OrderRef)
	fmt.Fprintf(body, "Estimated delivery: %s.\n\n", estimated.Format("Monday, January 2, 2006"))
	writeOrderLines(body, order)
	return s.send(ctx, "order_processed", customer.Email, customer.Name, subject, body.String())
}

func (s *service) SendContactEmail(ctx context.Context, message ContactMessage) (bool, error) {
	subject := message.Subject
	if subject == "" {
		subject = "New Contact Form Message"
	}
	body := &strings.Builder{}
	fmt.Fprintf(body, "From: %s <%s>\n\n%s\n", message.Name, message.Email, message.Message)
	return s.send(ctx, "contact", s.cfg.AdminEmail, "", subject, body.String())
}

func (s *service) SendTest(ctx context.Context, to string) (bool, error) {
	return s.send(ctx, "test", to, "", "Email Configuration Test", "If you can read this, outbound email works.\n")
}

func (s *service) send(ctx context.Context, kind, toEmail, toName, subject, body string) (bool, error) {
	if !s.Ready() {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "email_kind", kind), "email.not_configured")
		}
		return false, nil
	}
	if toEmail == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "recipient email is required")
	}

	from := mail.NewEmail(s.cfg.FromName, s.cfg.FromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, "<pre>"+body+"</pre>")

	status, err := s.sender.Send(ctx, message)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "email dispatch failed")
	}
	if status >= http.StatusBadRequest {
		return false, pkgerrors.New(pkgerrors.CodeDependency, "email provider rejected the message").
			WithDetails(map[string]any{"status": status, "kind": kind})
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "email_kind", kind), "email.sent")
	}
	return true, nil
}

func writeOrderLines(body *strings.Builder, order cart.CheckoutPayload) {
	for _, item := range order.Items {
		fmt.Fprintf(body, "  %dx %s (%s, %s) - $%d\n", item.Quantity, item.Title, item.Finish, item.Size, item.LineTotal)
	}
	fmt.Fprintf(body, "\nSubtotal: $%s\nShipping: $%s\nTotal: $%s\n", order.Subtotal, order.Shipping, order.Total)
}

// addBusinessDays walks forward day by day, skipping weekends.
func addBusinessDays(from time.Time, days int) time.Time {
	current := from
	for added := 0; added < days; {
		current = current.AddDate(0, 0, 1)
		if wd := current.Weekday(); wd != time.Saturday && wd != time.Sunday {
			added++
		}
	}
	return current
}
