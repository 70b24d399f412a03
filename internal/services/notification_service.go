package services

import (
	"context"
	"html/template"
	"strings"

	"go.uber.org/zap"

	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/pkg/logger"
	"github.com/urocareerz/urocareerz-api/pkg/mailer"
)

// NotificationService renders and sends transactional email. Only the OTP and
// announcement sends report failures; every other notification is best effort.
type NotificationService struct {
	sender      mailer.Sender
	frontendURL string
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(sender mailer.Sender, frontendURL string) *NotificationService {
	return &NotificationService{
		sender:      sender,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

func (n *NotificationService) link(path string) string {
	return n.frontendURL + path
}

func (n *NotificationService) send(ctx context.Context, name, to string, data mailer.Data) error {
	msg, err := mailer.Render(name, to, data)
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, msg)
}

// notify sends and logs failures without returning them.
func (n *NotificationService) notify(ctx context.Context, name, to string, data mailer.Data) {
	if err := n.send(ctx, name, to, data); err != nil {
		logger.Warn("Failed to send notification email",
			zap.String("template", name),
			zap.String("to", to),
			zap.Error(err))
	}
}

// SendLoginOTP emails a verification code.
func (n *NotificationService) SendLoginOTP(ctx context.Context, user *models.User, code string, ttlMinutes int) error {
	return n.send(ctx, mailer.TemplateLoginOTP, user.Email, mailer.Data{
		Name:             user.FirstName,
		Code:             code,
		ExpiresInMinutes: ttlMinutes,
	})
}

func (n *NotificationService) AccountApproved(ctx context.Context, user *models.User) {
	n.notify(ctx, mailer.TemplateAccountApproved, user.Email, mailer.Data{
		Name:      user.FirstName,
		ActionURL: n.link("/login"),
	})
}

func (n *NotificationService) AccountRejected(ctx context.Context, user *models.User, reason string) {
	n.notify(ctx, mailer.TemplateAccountRejected, user.Email, mailer.Data{
		Name:   user.FirstName,
		Reason: reason,
	})
}

func (n *NotificationService) OpportunityApproved(ctx context.Context, creator *models.User, o *models.Opportunity) {
	n.notify(ctx, mailer.TemplateOpportunityApproved, creator.Email, mailer.Data{
		Name:             creator.FirstName,
		OpportunityTitle: o.Title,
		ActionURL:        n.link("/opportunities/" + o.ID),
	})
}

func (n *NotificationService) OpportunityRejected(ctx context.Context, creator *models.User, o *models.Opportunity, reason string) {
	n.notify(ctx, mailer.TemplateOpportunityRejected, creator.Email, mailer.Data{
		Name:             creator.FirstName,
		OpportunityTitle: o.Title,
		Reason:           reason,
	})
}

// OpportunityConverted tells a submitter their listing was published; converted is the new copy.
func (n *NotificationService) OpportunityConverted(ctx context.Context, creator *models.User, converted *models.Opportunity) {
	n.notify(ctx, mailer.TemplateOpportunityConverted, creator.Email, mailer.Data{
		Name:             creator.FirstName,
		OpportunityTitle: converted.Title,
		ActionURL:        n.link("/opportunities/" + converted.ID),
	})
}

func (n *NotificationService) ApplicationReceived(ctx context.Context, creator *models.User, app *models.Application) {
	n.notify(ctx, mailer.TemplateApplicationReceived, creator.Email, mailer.Data{
		Name:             creator.FirstName,
		ApplicantName:    app.MenteeName,
		OpportunityTitle: app.OpportunityTitle,
		ActionURL:        n.link("/applications/" + app.ID),
	})
}

func (n *NotificationService) ApplicationStatusChanged(ctx context.Context, app *models.Application) {
	n.notify(ctx, mailer.TemplateApplicationStatus, app.MenteeEmail, mailer.Data{
		Name:             app.MenteeName,
		OpportunityTitle: app.OpportunityTitle,
		Status:           string(app.Status),
		ActionURL:        n.link("/applications/" + app.ID),
	})
}

// Announcement sends one announcement email. bodyHTML must already be sanitized.
func (n *NotificationService) Announcement(ctx context.Context, user *models.User, subject, bodyHTML, bodyText string) error {
	return n.send(ctx, mailer.TemplateAnnouncement, user.Email, mailer.Data{
		Name:     user.FirstName,
		Subject:  subject,
		BodyText: bodyText,
		BodyHTML: template.HTML(bodyHTML), //nolint:gosec // sanitized by the caller
	})
}
