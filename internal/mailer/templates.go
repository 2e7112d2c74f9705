package mailer

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// Templates for the four transactional emails. The HTML wrapper mirrors the
// marketing site's look; layout details are not part of the API contract.

const htmlHeader = `<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: 'Roboto', Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background: linear-gradient(135deg, #3b0064 0%, #5a0080 50%, #7d00a3 100%);
               color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
      .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
      .message { background: white; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 4px solid #5a0080; white-space: pre-wrap; }
      .footer { text-align: center; margin-top: 20px; color: #666; font-size: 12px; }
    </style>
  </head>
  <body>
    <div class="container">
`

func htmlFooter(note string) string {
	return fmt.Sprintf(`      <div class="footer">
        <p>&copy; %d BluCia Labs. All rights reserved.</p>
        <p>%s</p>
      </div>
    </div>
  </body>
</html>`, time.Now().Year(), note)
}

// Welcome greets a newly registered account (password or first Google
// sign-in).
func Welcome(to, name, frontendURL string) Message {
	safeName := html.EscapeString(name)
	htmlBody := htmlHeader + fmt.Sprintf(`      <div class="header"><h1>Welcome to BluCia Labs!</h1></div>
      <div class="content">
        <h2>Hello %s,</h2>
        <p>Thank you for joining <strong>BluCia Labs</strong> - Beyond Limits Ultimate Creativity and Intelligence Advancement!</p>
        <p>We're excited to have you on board. Your account has been successfully created.</p>
        <p><a href="%s/dashboard">Go to your dashboard</a> to submit and track service requests.</p>
        <p>Best regards,<br><strong>The BluCia Labs Team</strong></p>
      </div>
`, safeName, frontendURL) + htmlFooter("This is an automated email. Please do not reply to this message.")

	text := fmt.Sprintf(`Welcome to BluCia Labs!

Hello %s,

Thank you for joining BluCia Labs. Your account has been successfully created.

Visit your dashboard: %s/dashboard

Best regards,
The BluCia Labs Team`, name, frontendURL)

	return Message{To: to, Subject: "Welcome to BluCia Labs!", HTML: htmlBody, Text: text}
}

// RequestReceived confirms a new service request to its submitter.
func RequestReceived(to, name, requestID string) Message {
	safeName := html.EscapeString(name)
	htmlBody := htmlHeader + fmt.Sprintf(`      <div class="header"><h1>Request Received</h1></div>
      <div class="content">
        <h2>Hello %s,</h2>
        <p>We have received your service request <strong>#%s</strong> and our team will review it shortly.</p>
        <p>You can track its status from your dashboard at any time.</p>
        <p>Best regards,<br><strong>The BluCia Labs Team</strong></p>
      </div>
`, safeName, requestID) + htmlFooter(fmt.Sprintf("This email was sent regarding service request #%s", requestID))

	text := fmt.Sprintf(`Hello %s,

We have received your service request #%s and our team will review it shortly.
You can track its status from your dashboard at any time.

Best regards,
The BluCia Labs Team`, name, requestID)

	return Message{To: to, Subject: "We received your service request", HTML: htmlBody, Text: text}
}

// AdminAlertDetail carries the full submission for the staff notification.
type AdminAlertDetail struct {
	RequestID          string
	Name               string
	Email              string
	ServiceType        string
	ProjectDescription string
	Budget             string
	Timeline           string
	ClientType         string
	CompanyName        string
	CompanyLocation    string
	ProjectReason      string
}

// AdminAlert notifies the configured admin address about a new request.
func AdminAlert(to string, d AdminAlertDetail) Message {
	var b strings.Builder
	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, value)
		}
	}
	line("Request ID", "#"+d.RequestID)
	line("Name", d.Name)
	line("Email", d.Email)
	line("Client type", d.ClientType)
	line("Company", d.CompanyName)
	line("Location", d.CompanyLocation)
	line("Reason", d.ProjectReason)
	line("Service", d.ServiceType)
	line("Budget", d.Budget)
	line("Timeline", d.Timeline)
	line("Description", d.ProjectDescription)
	detail := b.String()

	htmlBody := htmlHeader + fmt.Sprintf(`      <div class="header"><h1>New Service Request</h1></div>
      <div class="content">
        <p>A new service request was submitted:</p>
        <div class="message">%s</div>
      </div>
`, html.EscapeString(detail)) + htmlFooter(fmt.Sprintf("This email was sent regarding service request #%s", d.RequestID))

	return Message{
		To:      to,
		Subject: fmt.Sprintf("New service request #%s from %s", d.RequestID, d.Name),
		HTML:    htmlBody,
		Text:    "A new service request was submitted:\n\n" + detail,
	}
}

// ClientMessage wraps a free-form staff message with the request context it
// refers to.
func ClientMessage(to, name, subject, body, requestID, serviceType, status string) Message {
	safeName := html.EscapeString(name)
	htmlBody := htmlHeader + fmt.Sprintf(`      <div class="header"><h1>BluCia Labs</h1></div>
      <div class="content">
        <h2>Hello %s,</h2>
        <div class="message">%s</div>
        <p><strong>Regarding your request:</strong><br>
        Request ID: #%s<br>
        Service: %s<br>
        Status: %s</p>
        <p>If you have any questions, please don't hesitate to reply to this email.</p>
        <p>Best regards,<br><strong>The BluCia Labs Team</strong></p>
      </div>
`, safeName, strings.ReplaceAll(html.EscapeString(body), "\n", "<br>"), requestID, serviceType, status) +
		htmlFooter(fmt.Sprintf("This email was sent regarding service request #%s", requestID))

	text := fmt.Sprintf(`Hello %s,

%s

Regarding your request:
Request ID: #%s
Service: %s
Status: %s

Best regards,
The BluCia Labs Team`, name, body, requestID, serviceType, status)

	return Message{To: to, Subject: subject, HTML: htmlBody, Text: text}
}
