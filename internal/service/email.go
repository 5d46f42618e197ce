package service

import (
	"context"
	"fmt"
	"strings"

	"estatehub-backend/internal/domain"
	"estatehub-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"gopkg.in/gomail.v2"
)

// MailSender delivers one plain-text message.
type MailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type smtpSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPSender(host string, port int, username, password, from string) MailSender {
	return &smtpSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *smtpSender) Send(ctx context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	logger.ExternalServiceCall(ctx, "smtp", "DialAndSend", "to", to)
	err := d.DialAndSend(m)
	logger.ExternalServiceResult(ctx, "smtp", "DialAndSend", err, "to", to)
	if err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}

type sendGridSender struct {
	client   *sendgrid.Client
	fromName string
	from     string
}

func NewSendGridSender(apiKey, fromName, from string) MailSender {
	return &sendGridSender{
		client:   sendgrid.NewSendClient(apiKey),
		fromName: fromName,
		from:     from,
	}
}

func (s *sendGridSender) Send(ctx context.Context, to, subject, body string) error {
	message := mail.NewSingleEmail(mail.NewEmail(s.fromName, s.from), subject, mail.NewEmail("", to), body, "")

	logger.ExternalServiceCall(ctx, "sendgrid", "Send", "to", to)
	resp, err := s.client.SendWithContext(ctx, message)
	if err == nil && resp.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	logger.ExternalServiceResult(ctx, "sendgrid", "Send", err, "to", to)
	if err != nil {
		return fmt.Errorf("failed to send email via sendgrid: %w", err)
	}
	return nil
}

type emailService struct {
	sender MailSender
}

// NewEmailService renders booking emails and hands them to sender. A nil
// sender disables email.
func NewEmailService(sender MailSender) EmailService {
	return &emailService{sender: sender}
}

func (s *emailService) send(ctx context.Context, to, subject, body string) error {
	if s.sender == nil {
		logger.Debug("Email disabled, skipping message", "to", to, "subject", subject)
		return nil
	}
	return s.sender.Send(ctx, to, subject, body)
}

func (s *emailService) SendBookingRequestNotification(ctx context.Context, ownerEmail, ownerName, bookerName, propertyName string, booking *domain.Booking) error {
	subject := fmt.Sprintf("New booking request for %s", propertyName)

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n%s has requested to book your property %s.\n", ownerName, bookerName, propertyName)
	if booking.StartDate != nil && booking.EndDate != nil {
		fmt.Fprintf(&b, "\nRequested stay: %s to %s\n", *booking.StartDate, *booking.EndDate)
	}
	fmt.Fprintf(&b, "Payment: %s via %s\n", booking.PaymentStatus, booking.PaymentMethod)
	b.WriteString("\nPlease review the request in your dashboard.\n\nBest regards,\nThe EstateHub Team")

	return s.send(ctx, ownerEmail, subject, b.String())
}

func (s *emailService) SendBookingStatusNotification(ctx context.Context, bookerEmail, bookerName, propertyName string, status domain.BookingStatus) error {
	subject := fmt.Sprintf("Your booking for %s is %s", propertyName, status)
	body := fmt.Sprintf("Hello %s,\n\nThe status of your booking for %s has been updated to: %s.\n\nBest regards,\nThe EstateHub Team", bookerName, propertyName, status)
	return s.send(ctx, bookerEmail, subject, body)
}

func (s *emailService) SendRentalAgreementNotification(ctx context.Context, bookerEmail, bookerName, propertyName string, agreement *domain.RentalAgreement) error {
	subject := fmt.Sprintf("Rental agreement issued for %s", propertyName)

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\nA rental agreement has been issued for your booking of %s.\n", bookerName, propertyName)
	if agreement.SecurityDeposit != nil {
		fmt.Fprintf(&b, "\nSecurity deposit: %d\n", *agreement.SecurityDeposit)
	}
	if agreement.LeaseDuration != nil && *agreement.LeaseDuration != "" {
		fmt.Fprintf(&b, "Lease duration: %s\n", *agreement.LeaseDuration)
	}
	b.WriteString("\nBest regards,\nThe EstateHub Team")

	return s.send(ctx, bookerEmail, subject, b.String())
}
