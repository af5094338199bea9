package services

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"

	"golang.org/x/net/html"
)

// convertHTMLToText converts HTML content to the plain-text alternative of a mail
func convertHTMLToText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}

	var text strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			collapsed := strings.Join(strings.Fields(n.Data), " ")
			if collapsed == "" {
				text.WriteString(" ")
				break
			}
			if strings.TrimLeft(n.Data, " \t\r\n") != n.Data {
				text.WriteString(" ")
			}
			text.WriteString(collapsed)
			if strings.TrimRight(n.Data, " \t\r\n") != n.Data {
				text.WriteString(" ")
			}
		case html.ElementNode:
			switch n.Data {
			case "p", "div", "br", "h1", "h2", "h3", "h4", "h5", "h6", "table", "tr":
				text.WriteString("\n")
			case "li":
				text.WriteString("\n• ")
			case "td", "th":
				text.WriteString(" | ")
			case "style", "script", "head":
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			extractText(child)
		}
	}
	extractText(doc)

	lines := strings.Split(text.String(), "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, l)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// processTemplate replaces {{name}} placeholders. Values are HTML-escaped when escape is set.
func processTemplate(templateStr string, variables map[string]string, escape bool) string {
	result := templateStr
	for key, value := range variables {
		if escape {
			value = html.EscapeString(value)
		}
		result = strings.ReplaceAll(result, fmt.Sprintf("{{%s}}", key), value)
	}
	return result
}

const quotationSubjectTemplate = "Quotation {{quotation_number}} from {{company_name}}"

const quotationBodyTemplate = `<html><body>
<p>Dear {{customer_name}},</p>
<p>Thank you for your enquiry. Please find attached our quotation <b>{{quotation_number}}</b>, valid until {{valid_until}}.</p>
<ul>
<li>Items: {{item_count}}</li>
<li>Grand total: {{grand_total}}</li>
</ul>
<p>For any clarification please contact {{agent_name}} on {{agent_phone}}.</p>
<p>Regards,<br>{{company_name}}</p>
</body></html>`

// SMTPConfig is the outgoing mail server.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Attachment is a file sent with a mail.
type Attachment struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Mail is one outgoing message. Text is derived from HTML when empty.
type Mail struct {
	To          []string
	Cc          []string
	Subject     string
	HTML        string
	Text        string
	Attachments []Attachment
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService delivers mail through SMTP
type EmailService struct {
	cfg  SMTPConfig
	send sendFunc
}

func NewEmailService(cfg SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg, send: smtp.SendMail}
}

func (es *EmailService) Configured() bool {
	return es != nil && es.cfg.Host != "" && es.cfg.From != ""
}

// Send delivers m to every To and Cc recipient.
func (es *EmailService) Send(m Mail) error {
	if !es.Configured() {
		return ErrMailDisabled
	}
	if len(m.To) == 0 {
		return errors.New("mail has no recipient")
	}
	msg, err := buildMessage(es.cfg.From, m)
	if err != nil {
		return err
	}

	var auth smtp.Auth
	if es.cfg.User != "" {
		auth = smtp.PlainAuth("", es.cfg.User, es.cfg.Password, es.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", es.cfg.Host, es.cfg.Port)
	rcpt := append(append([]string{}, m.To...), m.Cc...)
	if err := es.send(addr, auth, es.cfg.From, rcpt, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// buildMessage renders a multipart/mixed message with a text/html alternative and attachments.
func buildMessage(from string, m Mail) ([]byte, error) {
	if m.Text == "" {
		m.Text = convertHTMLToText(m.HTML)
	}

	var buf bytes.Buffer
	mixed := multipart.NewWriter(&buf)
	headers := []string{
		"From: " + from,
		"To: " + strings.Join(m.To, ", "),
	}
	if len(m.Cc) > 0 {
		headers = append(headers, "Cc: "+strings.Join(m.Cc, ", "))
	}
	headers = append(headers,
		"Subject: "+mime.QEncoding.Encode("utf-8", m.Subject),
		"MIME-Version: 1.0",
		fmt.Sprintf("Content-Type: multipart/mixed; boundary=%q", mixed.Boundary()),
		"",
		"",
	)
	// headers precede the first boundary written by mixed
	var msg bytes.Buffer
	msg.WriteString(strings.Join(headers, "\r\n"))

	altHeader := textproto.MIMEHeader{}
	var altBuf bytes.Buffer
	alt := multipart.NewWriter(&altBuf)
	altHeader.Set("Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", alt.Boundary()))
	altPart, err := mixed.CreatePart(altHeader)
	if err != nil {
		return nil, err
	}
	for _, p := range []struct{ ctype, body string }{
		{"text/plain; charset=utf-8", m.Text},
		{"text/html; charset=utf-8", m.HTML},
	} {
		h := textproto.MIMEHeader{}
		h.Set("Content-Type", p.ctype)
		h.Set("Content-Transfer-Encoding", "base64")
		w, err := alt.CreatePart(h)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(wrapBase64([]byte(p.body))); err != nil {
			return nil, err
		}
	}
	if err := alt.Close(); err != nil {
		return nil, err
	}
	if _, err := altPart.Write(altBuf.Bytes()); err != nil {
		return nil, err
	}

	for _, a := range m.Attachments {
		h := textproto.MIMEHeader{}
		ctype := a.ContentType
		if ctype == "" {
			ctype = "application/octet-stream"
		}
		h.Set("Content-Type", fmt.Sprintf("%s; name=%q", ctype, a.FileName))
		h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.FileName))
		h.Set("Content-Transfer-Encoding", "base64")
		w, err := mixed.CreatePart(h)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(wrapBase64(a.Data)); err != nil {
			return nil, err
		}
	}
	if err := mixed.Close(); err != nil {
		return nil, err
	}

	msg.Write(buf.Bytes())
	return msg.Bytes(), nil
}

// wrapBase64 encodes data in 76 character lines.
func wrapBase64(data []byte) []byte {
	enc := base64.StdEncoding.EncodeToString(data)
	var out bytes.Buffer
	for len(enc) > 76 {
		out.WriteString(enc[:76])
		out.WriteString("\r\n")
		enc = enc[76:]
	}
	out.WriteString(enc)
	out.WriteString("\r\n")
	return out.Bytes()
}
