package service

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"mime"
	"net/http"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/kickslife/storefront/internal/config"
	"github.com/kickslife/storefront/internal/constants"
	"github.com/kickslife/storefront/internal/models"
)

const (
	orderNotifySubject   = "New Order Received"
	defaultBrevoEndpoint = "https://api.brevo.com/v3/smtp/email"
)

// EmailService 邮件发送服务（Brevo API / SMTP）
type EmailService struct {
	cfg        *config.EmailConfig
	httpClient *http.Client
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	timeout := 5 * time.Second
	if cfg != nil && cfg.Brevo.TimeoutMS > 0 {
		timeout = time.Duration(cfg.Brevo.TimeoutMS) * time.Millisecond
	}
	return &EmailService{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Enabled 是否启用邮件发送
func (s *EmailService) Enabled() bool {
	return s != nil && s.cfg != nil && s.cfg.Enabled
}

// emailMessage 待发送邮件
type emailMessage struct {
	To      string
	ToName  string
	Subject string
	HTML    string
}

// SendOrderNotification 向店铺管理员发送新订单通知
func (s *EmailService) SendOrderNotification(ctx context.Context, order *models.Order) error {
	if !s.Enabled() {
		return ErrEmailServiceDisabled
	}
	if order == nil {
		return ErrOrderNotFound
	}
	receiver := strings.TrimSpace(s.cfg.AdminAddress)
	if receiver == "" {
		receiver = strings.TrimSpace(s.cfg.From)
	}
	html, err := renderOrderNotification(order)
	if err != nil {
		return err
	}
	return s.send(ctx, emailMessage{
		To:      receiver,
		ToName:  "Admin",
		Subject: orderNotifySubject,
		HTML:    html,
	})
}

// SendOrderStatusEmail 向顾客发送订单状态变更通知
func (s *EmailService) SendOrderStatusEmail(ctx context.Context, order *models.Order, status string) error {
	if !s.Enabled() {
		return ErrEmailServiceDisabled
	}
	if order == nil {
		return ErrOrderNotFound
	}
	html, err := renderOrderStatus(order, status)
	if err != nil {
		return err
	}
	return s.send(ctx, emailMessage{
		To:      order.CustomerEmail,
		ToName:  order.CustomerName,
		Subject: fmt.Sprintf("Your %s order %s is %s", constants.StoreName, order.OrderNo, status),
		HTML:    html,
	})
}

func (s *EmailService) send(ctx context.Context, msg emailMessage) error {
	if _, err := mail.ParseAddress(msg.To); err != nil {
		return ErrInvalidEmail
	}
	switch strings.ToLower(strings.TrimSpace(s.cfg.Provider)) {
	case "", constants.EmailProviderBrevo:
		return s.sendBrevo(ctx, msg)
	case constants.EmailProviderSMTP:
		return s.sendSMTP(msg)
	default:
		return ErrEmailServiceNotConfigured
	}
}

type brevoContact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoRequest struct {
	Sender      brevoContact   `json:"sender"`
	To          []brevoContact `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

func (s *EmailService) sendBrevo(ctx context.Context, msg emailMessage) error {
	apiKey := strings.TrimSpace(s.cfg.Brevo.APIKey)
	if apiKey == "" || strings.TrimSpace(s.cfg.From) == "" {
		return ErrEmailServiceNotConfigured
	}
	endpoint := strings.TrimSpace(s.cfg.Brevo.Endpoint)
	if endpoint == "" {
		endpoint = defaultBrevoEndpoint
	}
	body, err := json.Marshal(brevoRequest{
		Sender:      brevoContact{Name: s.senderName(), Email: s.cfg.From},
		To:          []brevoContact{{Name: msg.ToName, Email: msg.To}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEmailProviderFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("%w: status %d: %s", ErrEmailProviderFailed, resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}

func (s *EmailService) sendSMTP(msg emailMessage) error {
	smtpCfg := s.cfg.SMTP
	if smtpCfg.Host == "" || smtpCfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	from := buildFromAddress(s.cfg.From, s.senderName())
	raw := buildEmailMessage(from, msg.To, msg.Subject, msg.HTML)

	addr := fmt.Sprintf("%s:%d", smtpCfg.Host, smtpCfg.Port)
	var auth smtp.Auth
	if smtpCfg.Username != "" || smtpCfg.Password != "" {
		auth = smtp.PlainAuth("", smtpCfg.Username, smtpCfg.Password, smtpCfg.Host)
	}
	to := []string{msg.To}
	switch {
	case smtpCfg.UseSSL:
		return normalizeEmailSendError(sendMailWithSSL(addr, auth, smtpCfg.Host, s.cfg.From, to, []byte(raw)))
	case smtpCfg.UseTLS:
		return normalizeEmailSendError(sendMailWithStartTLS(addr, auth, smtpCfg.Host, s.cfg.From, to, []byte(raw)))
	default:
		return normalizeEmailSendError(sendMailPlain(addr, auth, s.cfg.From, to, []byte(raw)))
	}
}

func (s *EmailService) senderName() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return constants.StoreName
	}
	return name
}

var orderNotifyTemplate = template.Must(template.New("order_notify").Parse(`
<h2>New Order Received</h2>
<p><b>Order:</b> {{.OrderNo}}</p>
<p><b>Name:</b> {{.CustomerName}}</p>
<p><b>Email:</b> {{.CustomerEmail}}</p>
<p><b>Phone:</b> {{if .CustomerPhone}}{{.CustomerPhone}}{{else}}-{{end}}</p>
<p><b>Address:</b> {{.ShippingAddress}}</p>
<h3>Order Items:</h3>
<ul>{{range .Items}}
<li style="margin-bottom:8px;"><b>{{.Quantity}} x {{.ProductName}}</b><br/>Size: {{or .Size "-"}}, Color: {{or .Color "-"}}, Price: ${{.Price.StringFixed 2}}</li>{{end}}
</ul>
<p><b>Promo Code:</b> {{if .PromoCode}}{{.PromoCode}}{{else}}-{{end}}</p>
<p><b>Subtotal:</b> ${{.Subtotal.StringFixed 2}}</p>
<p><b>Discount:</b> ${{.DiscountAmount.StringFixed 2}}</p>
<p><b>Total:</b> ${{.TotalAmount.StringFixed 2}}</p>
`))

var orderStatusTemplate = template.Must(template.New("order_status").Parse(`
<h2>Hi {{.Order.CustomerName}},</h2>
<p>Your order <b>{{.Order.OrderNo}}</b> is now <b>{{.Status}}</b>.</p>
<p><b>Total:</b> ${{.Order.TotalAmount.StringFixed 2}}</p>
<p>Thanks for shopping with {{.Store}}.</p>
`))

func renderOrderNotification(order *models.Order) (string, error) {
	var buf bytes.Buffer
	if err := orderNotifyTemplate.Execute(&buf, order); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderOrderStatus(order *models.Order, status string) (string, error) {
	var buf bytes.Buffer
	err := orderStatusTemplate.Execute(&buf, map[string]interface{}{
		"Order":  order,
		"Status": status,
		"Store":  constants.StoreName,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, html string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(html)
	return buf.String()
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()
	if err := smtpAuth(client, auth); err != nil {
		return err
	}
	return sendSMTPData(client, from, to, msg)
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}
	if err := smtpAuth(client, auth); err != nil {
		return err
	}
	return sendSMTPData(client, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()
	if err := smtpAuth(client, auth); err != nil {
		return err
	}
	return sendSMTPData(client, from, to, msg)
}

func smtpAuth(client *smtp.Client, auth smtp.Auth) error {
	if auth == nil {
		return nil
	}
	if ok, _ := client.Extension("AUTH"); ok {
		return client.Auth(auth)
	}
	return nil
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func normalizeEmailSendError(err error) error {
	if err == nil {
		return nil
	}
	if isEmailRecipientRejected(err) {
		return ErrEmailRecipientRejected
	}
	return err
}

func isEmailRecipientRejected(err error) bool {
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	if message == "" {
		return false
	}
	keywords := []string{
		"no such recipient",
		"no such user",
		"recipient address rejected",
		"invalid recipient",
		"user unknown",
		"mailbox unavailable",
	}
	for _, keyword := range keywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	return strings.Contains(message, "550") && strings.Contains(message, "recipient")
}
