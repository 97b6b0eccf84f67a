package mail

import (
	"fmt"
	"html/template"
	"strings"
)

// Subjects for the transactional and promotional emails.
const (
	// ResetSubject is the password-reset email subject.
	ResetSubject = "Password Reset Request"
)

var resetTemplate = template.Must(template.New("reset").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #362C2B; color: #FFF;">
  <div style="text-align: center; margin-bottom: 20px;">
    <img src="https://www.platyfa-game.com/static/images/logo_V1.png" alt="Platyfa Logo" style="height: 50px;">
  </div>
  <div style="background-color: #4F3A39; padding: 20px; border-radius: 8px;">
    <h1 style="text-align: center; color: #F9C784; margin-bottom: 20px;">Reset Your Password</h1>
    <p style="color: #EDEDED; line-height: 1.6; margin-bottom: 20px;">Hello,</p>
    <p style="color: #EDEDED; line-height: 1.6; margin-bottom: 20px;">
      We received a request to reset your password for your Platyfa account. Click the button below to proceed:
    </p>
    <div style="text-align: center; margin-bottom: 20px;">
      <a href="{{.ResetLink}}" style="text-decoration: none; background-color: #F9C784; color: #362C2B; padding: 10px 20px; border-radius: 5px; font-weight: bold; display: inline-block;">
        Reset Password
      </a>
    </div>
    <p style="color: #EDEDED; line-height: 1.6; margin-bottom: 20px;">
      If you did not request this, please ignore this email. This link will expire in 1 hour.
    </p>
    <p style="color: #EDEDED; line-height: 1.6;">Regards,<br>The Platyfa Team</p>
  </div>
  <div style="text-align: center; margin-top: 20px; font-size: 12px; color: #AAA;">
    <p style="margin: 0;">&copy; Platyfa Games. All rights reserved.</p>
  </div>
</div>
`))

var promoTemplate = template.Must(template.New("promo").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #362C2B; color: #FFF; border-radius: 10px;">
  <div style="text-align: center; margin-bottom: 20px;">
    <img src="https://www.platyfa-game.com/static/images/logo_V1.png" alt="Platyfa Logo" style="height: 50px;">
  </div>
  <div style="background-color: #4F3A39; padding: 15px; border-radius: 8px; text-align: center; margin-bottom: 20px;">
    <h1 style="font-size: 24px; color: #F9C784; margin: 0;">{{.Title}}</h1>
    <p style="color: #EDEDED; font-size: 14px; margin: 0;">by <strong>{{.Author}}</strong></p>
  </div>
  <div style="padding: 15px; background-color: #2C1E16; border-radius: 8px; margin-bottom: 20px;">
    <p style="color: #EDEDED; line-height: 1.6; font-size: 16px;">{{.Content}}</p>
  </div>
  {{if .Image}}
  <div style="text-align: center; margin-bottom: 20px;">
    <img src="{{.Image}}" alt="Promotion Image" style="max-width: 100%; border-radius: 8px;">
  </div>
  {{end}}
  <div style="text-align: center; margin-top: 20px; font-size: 12px; color: #AAA;">
    <p style="margin: 0;">&copy; Platyfa Games. All rights reserved.</p>
  </div>
</div>
`))

// ResetEmailBody renders the password-reset email for a reset link.
func ResetEmailBody(resetLink string) (string, error) {
	var b strings.Builder
	if err := resetTemplate.Execute(&b, struct{ ResetLink string }{resetLink}); err != nil {
		return "", fmt.Errorf("mail: render reset email: %w", err)
	}
	return b.String(), nil
}

// PromoEmailBody renders the promotional email blast body.
func PromoEmailBody(title, author, content, image string) (string, error) {
	var b strings.Builder
	data := struct {
		Title   string
		Author  string
		Content string
		Image   string
	}{title, author, content, image}
	if err := promoTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("mail: render promo email: %w", err)
	}
	return b.String(), nil
}
