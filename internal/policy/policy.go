// Package policy decides who may mutate a settlement record.
//
// Ownership is string equality against the record's self-declared author; it
// is a business rule, not a security boundary. The admin override password is
// a shared escape hatch that bypasses the ownership check only, never the
// confirmed-state lock.
package policy

import (
	"github.com/jinkisoma/web-manager/internal/apperr"
	"github.com/jinkisoma/web-manager/internal/model"
)

// Actor is the identity a request claims: a free-text author name plus an
// optional admin override password.
type Actor struct {
	Author   string
	Override string
}

type Policy struct {
	overridePassword string
	cancelPassphrase string
}

func New(overridePassword, cancelPassphrase string) *Policy {
	return &Policy{
		overridePassword: overridePassword,
		cancelPassphrase: cancelPassphrase,
	}
}

func (p *Policy) ownerOrOverride(rec *model.Record, actor Actor) bool {
	if rec.Author == actor.Author {
		return true
	}
	return p.overridePassword != "" && actor.Override == p.overridePassword
}

// AuthorizeUpdate permits editing an unconfirmed record by its owner or an
// override holder. The confirmed lock is checked first and is absolute: a
// confirmed record cannot be edited by anyone.
func (p *Policy) AuthorizeUpdate(rec *model.Record, actor Actor) error {
	if rec.Confirmed {
		return apperr.New(apperr.KindPermission, "confirmed records cannot be modified")
	}
	if !p.ownerOrOverride(rec, actor) {
		return apperr.New(apperr.KindPermission, "only the author may modify this record")
	}
	return nil
}

// AuthorizeDelete follows the same precedence as AuthorizeUpdate.
func (p *Policy) AuthorizeDelete(rec *model.Record, actor Actor) error {
	if rec.Confirmed {
		return apperr.New(apperr.KindPermission, "confirmed records cannot be deleted")
	}
	if !p.ownerOrOverride(rec, actor) {
		return apperr.New(apperr.KindPermission, "only the author may delete this record")
	}
	return nil
}

// AuthorizeConfirm has no confirmed-state lock; it exists to flip the flag.
func (p *Policy) AuthorizeConfirm(rec *model.Record, actor Actor) error {
	if !p.ownerOrOverride(rec, actor) {
		return apperr.New(apperr.KindPermission, "only the author may confirm this record")
	}
	return nil
}

// AuthorizeUnconfirm requires the cancellation passphrase before ownership is
// even considered; a wrong passphrase is an authentication failure, not a
// permission one.
func (p *Policy) AuthorizeUnconfirm(rec *model.Record, actor Actor, passphrase string) error {
	if err := p.VerifyCancelPassphrase(passphrase); err != nil {
		return err
	}
	if !p.ownerOrOverride(rec, actor) {
		return apperr.New(apperr.KindPermission, "only the author may cancel confirmation")
	}
	return nil
}

// VerifyCancelPassphrase checks the confirmation-cancel passphrase on its own.
func (p *Policy) VerifyCancelPassphrase(passphrase string) error {
	if passphrase != p.cancelPassphrase {
		return apperr.New(apperr.KindAuthentication, "cancellation passphrase does not match")
	}
	return nil
}
