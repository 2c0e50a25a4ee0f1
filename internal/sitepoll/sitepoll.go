// Package sitepoll checks an env line list against the settings the site
// poller reads from its .env file.
//
// The poller downloads TARGET_URL, searches it either with a CSS SELECTOR
// (CONTENT_TYPE=html) or for comma separated SEARCH_TEXT terms
// (CONTENT_TYPE=text), and mails matches from EMAIL_FROM to EMAIL_TO through
// SMTP_RELAY. Its DEBUG and PREVENT_EMAIL switches are optional and not checked.
package sitepoll

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"envlist/internal/compose"
)

// Keys read by the poller.
const (
	TargetURLKey   = "TARGET_URL"
	ContentTypeKey = "CONTENT_TYPE"
	SelectorKey    = "SELECTOR"
	SearchTextKey  = "SEARCH_TEXT"
	SMTPRelayKey   = "SMTP_RELAY"
	SMTPUserKey    = "SMTP_USER"
	SMTPPassKey    = "SMTP_PASS"
	EmailToKey     = "EMAIL_TO"
	EmailFromKey   = "EMAIL_FROM"
)

// Content types accepted in CONTENT_TYPE, compared case-insensitively.
const (
	ContentHTML = "html"
	ContentText = "text"
)

// Problem is one setting the poller would reject.
type Problem struct {
	Key     string
	Message string
}

func (p Problem) String() string {
	return p.Key + ": " + p.Message
}

// Check returns the problems the poller would hit when started with lines as
// its environment, in the order it reads its settings. Commented out keys
// are already gone from lines and count as missing.
func Check(lines []string) []Problem {
	env := values(lines)
	var problems []Problem

	missing := func(key, hint string) bool {
		if _, ok := env[key]; ok {
			return false
		}
		problems = append(problems, Problem{Key: key, Message: "not set, " + hint})
		return true
	}

	if !missing(TargetURLKey, "need the url of the page to poll") {
		if u, err := url.Parse(env[TargetURLKey]); err != nil || u.Scheme == "" || u.Host == "" {
			problems = append(problems, Problem{Key: TargetURLKey, Message: fmt.Sprintf("%q is not an absolute url", env[TargetURLKey])})
		}
	}

	if !missing(ContentTypeKey, "need '"+ContentHTML+"' or '"+ContentText+"'") {
		switch strings.ToLower(strings.TrimSpace(env[ContentTypeKey])) {
		case ContentHTML:
			missing(SelectorKey, "need a CSS selector for html content")
		case ContentText:
			missing(SearchTextKey, "need comma separated search terms for text content")
		default:
			problems = append(problems, Problem{Key: ContentTypeKey, Message: fmt.Sprintf("unknown content type %q", env[ContentTypeKey])})
		}
	}

	for _, key := range []string{EmailToKey, EmailFromKey} {
		if missing(key, "need a mailbox like 'Name <user@example.com>'") {
			continue
		}
		if _, err := mail.ParseAddress(env[key]); err != nil {
			problems = append(problems, Problem{Key: key, Message: fmt.Sprintf("%q is not a mailbox: %v", env[key], err)})
		}
	}

	missing(SMTPRelayKey, "need the SMTP relay host")
	missing(SMTPUserKey, "need the SMTP username")
	missing(SMTPPassKey, "need the SMTP password")

	return problems
}

// values maps keys with a value to that value, unquoted.
// Bare keys take their value from the shell and are left out.
func values(lines []string) map[string]string {
	env := map[string]string{}
	for key, value := range compose.Environment(lines) {
		if value == nil {
			continue
		}
		env[strings.TrimSpace(key)] = unquote(strings.TrimSpace(*value))
	}
	return env
}

func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == '"' || first == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}
