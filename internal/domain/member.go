package domain

import "time"

// AuthMethod is how a member proves who they are. It is either a PasswordCredential
// or an ExternallyLinked account; the unexported marker keeps the set closed.
type AuthMethod interface {
	authMethod()
}

type PasswordCredential struct {
	Hash string
}

type ExternallyLinked struct {
	Handle string
}

func (PasswordCredential) authMethod() {}
func (ExternallyLinked) authMethod()   {}

type Member struct {
	ID                 uint       `json:"id"`
	Email              string     `json:"email"`
	Auth               AuthMethod `json:"-"`
	Point              int        `json:"point"`
	NotificationHandle string     `json:"-"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// NotificationTarget returns the handle used by the outbound messaging client and
// whether the member has one at all.
func (m Member) NotificationTarget() (string, bool) {
	return m.NotificationHandle, m.NotificationHandle != ""
}

// PasswordHash returns the stored credential hash. Externally linked members have none.
func (m Member) PasswordHash() (string, bool) {
	switch a := m.Auth.(type) {
	case PasswordCredential:
		return a.Hash, true
	default:
		return "", false
	}
}
