package alerts

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/jobsentry/jobsentry-api/internal/models"
	"google.golang.org/api/gmail/v1"
)

type GmailSender struct {
	service *gmail.Service
}

func NewGmailSender(service *gmail.Service) *GmailSender {
	return &GmailSender{service: service}
}

// SendMatches emails a digest of new matches to the user.
func (g *GmailSender) SendMatches(to string, matches []*models.JobMatch) error {
	if g.service == nil {
		return fmt.Errorf("gmail service not connected")
	}
	if len(matches) == 0 {
		return nil
	}

	subject := fmt.Sprintf("%d new job match(es) for you", len(matches))
	var body strings.Builder
	for _, m := range matches {
		p := m.Posting
		fmt.Fprintf(&body, "%s", p.Title)
		if p.Company != "" {
			fmt.Fprintf(&body, " at %s", p.Company)
		}
		if p.Location != "" {
			fmt.Fprintf(&body, " (%s)", p.Location)
		}
		fmt.Fprintf(&body, "\nScore: %d/100", m.Score)
		if p.SalaryRaw != "" {
			fmt.Fprintf(&body, " | %s", p.SalaryRaw)
		}
		fmt.Fprintf(&body, "\n%s\n\n", p.URL)
	}

	raw := fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		to, subject, body.String())
	msg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	if _, err := g.service.Users.Messages.Send("me", msg).Do(); err != nil {
		return fmt.Errorf("gmail send failed: %w", err)
	}
	return nil
}
