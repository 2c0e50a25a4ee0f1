package sitepoll

import (
	"strings"
	"testing"

	"envlist/internal/envlines"
)

const completeEnv = `# poller
TARGET_URL=https://example.com/stock
CONTENT_TYPE=html
SELECTOR=div.product > span.available
EMAIL_TO="User <user@example.com>"
EMAIL_FROM=Poller <poller@example.com>
SMTP_RELAY=smtp.example.com
SMTP_USER=poller
SMTP_PASS=secret
`

func keys(problems []Problem) string {
	var out []string
	for _, p := range problems {
		out = append(out, p.Key)
	}
	return strings.Join(out, ",")
}

func TestCheckComplete(t *testing.T) {
	if problems := Check(envlines.Filter(completeEnv)); len(problems) != 0 {
		t.Errorf("expected no problems, got %v", problems)
	}

	text := strings.Replace(completeEnv, "CONTENT_TYPE=html\nSELECTOR=div.product > span.available", "CONTENT_TYPE= Text \nSEARCH_TEXT=in stock,available", 1)
	if problems := Check(envlines.Filter(text)); len(problems) != 0 {
		t.Errorf("expected no problems for text content, got %v", problems)
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		replace  string
		with     string
		expected string
	}{
		{"CommentedOutURL", "TARGET_URL=", "#TARGET_URL=", "TARGET_URL"},
		{"RelativeURL", "https://example.com/stock", "/stock", "TARGET_URL"},
		{"UnknownContentType", "CONTENT_TYPE=html", "CONTENT_TYPE=json", "CONTENT_TYPE"},
		{"MissingSelector", "SELECTOR=", "#SELECTOR=", "SELECTOR"},
		{"TextWithoutSearchText", "CONTENT_TYPE=html", "CONTENT_TYPE=text", "SEARCH_TEXT"},
		{"BadMailbox", "EMAIL_TO=\"User <user@example.com>\"", "EMAIL_TO=user at example", "EMAIL_TO"},
		{"BareKeyIsMissing", "SMTP_PASS=secret", "SMTP_PASS", "SMTP_PASS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Replace(completeEnv, tt.replace, tt.with, 1)
			if got := keys(Check(envlines.Filter(text))); got != tt.expected {
				t.Errorf("problem keys = %q; want %q", got, tt.expected)
			}
		})
	}
}

func TestCheckEmpty(t *testing.T) {
	got := keys(Check(nil))
	want := "TARGET_URL,CONTENT_TYPE,EMAIL_TO,EMAIL_FROM,SMTP_RELAY,SMTP_USER,SMTP_PASS"
	if got != want {
		t.Errorf("problem keys = %q; want %q", got, want)
	}
}

func TestProblemString(t *testing.T) {
	p := Problem{Key: SMTPUserKey, Message: "not set"}
	if p.String() != "SMTP_USER: not set" {
		t.Errorf("String() = %q", p.String())
	}
}
