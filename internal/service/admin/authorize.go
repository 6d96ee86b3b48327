package admin

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"teamboard/internal/config"
	"teamboard/internal/domain"
	"teamboard/internal/model"
	"teamboard/internal/repository"
)

// AllowList holds lower-cased admin emails.
type AllowList map[string]struct{}

func NewAllowList(emails ...string) AllowList {
	allow := make(AllowList, len(emails))
	for _, e := range emails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			allow[e] = struct{}{}
		}
	}
	return allow
}

func (a AllowList) Contains(email string) bool {
	_, ok := a[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

type Decision struct {
	// Allowed is true when the email alone grants admin access.
	Allowed bool
	// Promote asks the caller to record the user as an admin.
	Promote bool
}

// Evaluate decides what the allow list says about ident. A user not on the
// list may still be an admin through an earlier promotion.
func Evaluate(ident model.Identity, allow AllowList) Decision {
	if ident.Anonymous() || ident.Email == "" {
		return Decision{}
	}
	if allow.Contains(ident.Email) {
		return Decision{Allowed: true, Promote: true}
	}
	return Decision{}
}

type Authorizer struct {
	admins repository.AdminRepository
	allow  AllowList
	log    *zap.Logger
}

func NewAuthorizer(cfg *config.Config, admins repository.AdminRepository, logger *zap.Logger) *Authorizer {
	return &Authorizer{admins: admins, allow: NewAllowList(cfg.AdminEmails...), log: logger}
}

func (a *Authorizer) Authorize(ctx context.Context, ident model.Identity) error {
	if ident.Anonymous() {
		return domain.ErrUnauthorized
	}
	decision := Evaluate(ident, a.allow)
	if decision.Promote {
		if err := a.admins.UpsertAdmin(ctx, ident.UserID); err != nil {
			// The allow-list already grants access; the stored row only backs later checks.
			a.log.Error("promote admin failed", zap.String("user_id", ident.UserID), zap.Error(err))
		}
	}
	if decision.Allowed {
		return nil
	}
	ok, err := a.admins.IsAdmin(ctx, ident.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}
