package wizard

import (
	"context"
	"log"
	"signup-wizard/pkg/models"
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeUpdate Mode = "update"
)

// Lookup is the backend read that tells new submitters from returning ones.
type Lookup interface {
	LookupUserByPhone(ctx context.Context, phone string) (*models.UserLookupResponse, error)
	LookupUserByEmail(ctx context.Context, email string) (*models.UserLookupResponse, error)
}

type IdentifierKind string

const (
	IdentifierPhone IdentifierKind = "phone"
	IdentifierEmail IdentifierKind = "email"
)

type Identifier struct {
	Kind  IdentifierKind
	Value string
}

func (id Identifier) Key() string {
	return string(id.Kind) + ":" + id.Value
}

type Reconciler struct {
	Lookup    Lookup
	MinLength int
}

func NewReconciler(l Lookup, minLength int) *Reconciler {
	return &Reconciler{Lookup: l, MinLength: minLength}
}

// Eligible reports whether id is plausible enough to look up.
func (r *Reconciler) Eligible(id Identifier) bool {
	switch id.Kind {
	case IdentifierPhone:
		return len(id.Value) >= r.MinLength
	case IdentifierEmail:
		return ValidEmail(id.Value)
	}
	return false
}

// Check returns the stored registration for id, or nil when the submitter
// should be treated as new. Lookup failures are logged and count as new.
func (r *Reconciler) Check(ctx context.Context, id Identifier) *models.ExistingUser {
	var (
		resp *models.UserLookupResponse
		err  error
	)
	switch id.Kind {
	case IdentifierPhone:
		resp, err = r.Lookup.LookupUserByPhone(ctx, id.Value)
	case IdentifierEmail:
		resp, err = r.Lookup.LookupUserByEmail(ctx, id.Value)
	default:
		return nil
	}
	if err != nil {
		log.Printf("Existing-user check for %s failed: %v", MaskIdentifier(id.Value), err)
		return nil
	}
	if resp == nil || !resp.Exists || resp.User == nil {
		return nil
	}
	return resp.User
}

// channelsOf lists the channels enabled on a stored registration.
func channelsOf(u *models.ExistingUser) []Channel {
	var chs []Channel
	if u.EmailStatus != nil && *u.EmailStatus {
		chs = append(chs, ChannelEmail)
	}
	if u.WhatsappStatus {
		chs = append(chs, ChannelWhatsApp)
	}
	if u.TelegramStatus {
		chs = append(chs, ChannelTelegram)
	}
	return chs
}
