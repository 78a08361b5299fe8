package email

import (
	"context"
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/gomail.v2"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/billing"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/identity"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	Enabled     bool
}

// BillingMailer delivers invoice, receipt and trial-reminder emails to the
// tenant owner. Delivery is best-effort; callers log failures and move on.
type BillingMailer struct {
	config         SMTPConfig
	dialer         *gomail.Dialer
	tenantRepo     identity.TenantRepository
	membershipRepo identity.MembershipRepository
	userRepo       identity.UserRepository
	logger         logger.Interface
}

func NewBillingMailer(
	config SMTPConfig,
	tenantRepo identity.TenantRepository,
	membershipRepo identity.MembershipRepository,
	userRepo identity.UserRepository,
	logger logger.Interface,
) *BillingMailer {
	return &BillingMailer{
		config:         config,
		dialer:         gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		tenantRepo:     tenantRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

func (m *BillingMailer) SendInvoiceIssued(ctx context.Context, invoice *billing.Invoice) error {
	tenant, owner, err := m.resolveOwner(ctx, invoice.TenantID())
	if err != nil {
		return err
	}

	total := formatAmount(invoice.TotalAmount(), invoice.Currency())
	subject := fmt.Sprintf("Invoice %s for %s", invoice.InvoiceNumber(), tenant.Name())

	var lines string
	for _, item := range invoice.LineItems() {
		lines += fmt.Sprintf("<tr><td>%s</td><td align=\"right\">%d</td><td align=\"right\">%s</td></tr>",
			item.Description(), item.Quantity(), formatAmount(item.Total(), invoice.Currency()))
	}

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Invoice %s</h2>
			<p>Hi %s,</p>
			<p>A new invoice has been issued for <b>%s</b> covering %s to %s.</p>
			<table width="100%%" cellpadding="4">
				<tr><th align="left">Description</th><th align="right">Qty</th><th align="right">Amount</th></tr>
				%s
				<tr><td colspan="2" align="right">Tax</td><td align="right">%s</td></tr>
				<tr><td colspan="2" align="right"><b>Total due</b></td><td align="right"><b>%s</b></td></tr>
			</table>
			<p>Please complete payment from your billing dashboard.</p>
		</body>
		</html>
	`, invoice.InvoiceNumber(), owner.Name(), tenant.Name(),
		invoice.PeriodStart().Format("02 Jan 2006"), invoice.PeriodEnd().Format("02 Jan 2006"),
		lines, formatAmount(invoice.TaxAmount(), invoice.Currency()), total)

	plainBody := fmt.Sprintf(`Invoice %s

Hi %s,

A new invoice of %s has been issued for %s covering %s to %s.
Please complete payment from your billing dashboard.
`, invoice.InvoiceNumber(), owner.Name(), total, tenant.Name(),
		invoice.PeriodStart().Format("02 Jan 2006"), invoice.PeriodEnd().Format("02 Jan 2006"))

	return m.send(owner.Email(), subject, htmlBody, plainBody)
}

func (m *BillingMailer) SendPaymentReceipt(ctx context.Context, invoice *billing.Invoice, payment *billing.Payment) error {
	tenant, owner, err := m.resolveOwner(ctx, invoice.TenantID())
	if err != nil {
		return err
	}

	amount := formatAmount(payment.Amount().AmountMinor(), payment.Amount().Currency())
	subject := fmt.Sprintf("Payment received for invoice %s", invoice.InvoiceNumber())

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Payment Received</h2>
			<p>Hi %s,</p>
			<p>We have received your payment of <b>%s</b> for invoice %s (%s).</p>
			<p>Thank you!</p>
		</body>
		</html>
	`, owner.Name(), amount, invoice.InvoiceNumber(), tenant.Name())

	plainBody := fmt.Sprintf(`Payment Received

Hi %s,

We have received your payment of %s for invoice %s (%s).

Thank you!
`, owner.Name(), amount, invoice.InvoiceNumber(), tenant.Name())

	return m.send(owner.Email(), subject, htmlBody, plainBody)
}

func (m *BillingMailer) SendTrialEndingReminder(ctx context.Context, tenantID uint, daysLeft int) error {
	tenant, owner, err := m.resolveOwner(ctx, tenantID)
	if err != nil {
		return err
	}

	when := "soon"
	switch {
	case daysLeft <= 0:
		when = "today"
	case daysLeft == 1:
		when = "tomorrow"
	default:
		when = fmt.Sprintf("in %d days", daysLeft)
	}

	subject := fmt.Sprintf("Your %s trial ends %s", tenant.Name(), when)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Trial Ending</h2>
			<p>Hi %s,</p>
			<p>The trial for <b>%s</b> ends %s. Add a payment method to keep your workspace active.</p>
		</body>
		</html>
	`, owner.Name(), tenant.Name(), when)

	plainBody := fmt.Sprintf(`Trial Ending

Hi %s,

The trial for %s ends %s. Add a payment method to keep your workspace active.
`, owner.Name(), tenant.Name(), when)

	return m.send(owner.Email(), subject, htmlBody, plainBody)
}

// resolveOwner finds the tenant's owner membership and loads the owner user.
func (m *BillingMailer) resolveOwner(ctx context.Context, tenantID uint) (*identity.Tenant, *identity.User, error) {
	tenant, err := m.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load tenant %d: %w", tenantID, err)
	}

	memberships, _, err := m.membershipRepo.GetByTenant(ctx, tenantID, 1, 100)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list memberships for tenant %d: %w", tenantID, err)
	}

	for _, membership := range memberships {
		if !membership.IsOwner() {
			continue
		}
		owner, err := m.userRepo.GetByID(ctx, membership.UserID())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load owner user: %w", err)
		}
		if owner == nil {
			break
		}
		return tenant, owner, nil
	}
	return nil, nil, fmt.Errorf("tenant %d has no owner to notify", tenantID)
}

func (m *BillingMailer) send(to, subject, htmlBody, plainBody string) error {
	if !m.config.Enabled {
		m.logger.Debugw("email delivery disabled, skipping", "to", to, "subject", subject)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.config.FromAddress, m.config.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", plainBody)
	msg.AddAlternative("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// formatAmount renders minor units as a localized currency string,
// e.g. 117882 INR as "₹ 1,178.82".
func formatAmount(minor int64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%s %.2f", code, float64(minor)/100)
	}
	p := message.NewPrinter(language.English)
	return p.Sprintf("%v", currency.Symbol(unit.Amount(float64(minor)/100)))
}
