package policy

import (
	"testing"

	"github.com/jinkisoma/web-manager/internal/apperr"
	"github.com/jinkisoma/web-manager/internal/model"

	"github.com/stretchr/testify/assert"
)

const (
	overridePW = "2580"
	cancelPW   = "1234"
)

func newPolicy() *Policy {
	return New(overridePW, cancelPW)
}

func record(author string, confirmed bool) *model.Record {
	return &model.Record{Author: author, Confirmed: confirmed}
}

func TestAuthorizeUpdate(t *testing.T) {
	p := newPolicy()

	tests := []struct {
		name     string
		rec      *model.Record
		actor    Actor
		wantKind apperr.Kind
	}{
		{"owner on unconfirmed", record("alice", false), Actor{Author: "alice"}, apperr.KindUnknown},
		{"override on unconfirmed", record("alice", false), Actor{Author: "bob", Override: overridePW}, apperr.KindUnknown},
		{"stranger denied", record("alice", false), Actor{Author: "bob"}, apperr.KindPermission},
		{"wrong override denied", record("alice", false), Actor{Author: "bob", Override: "0000"}, apperr.KindPermission},
		{"owner blocked by confirmed lock", record("alice", true), Actor{Author: "alice"}, apperr.KindPermission},
		{"override blocked by confirmed lock", record("alice", true), Actor{Author: "bob", Override: overridePW}, apperr.KindPermission},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.AuthorizeUpdate(tt.rec, tt.actor)
			if tt.wantKind == apperr.KindUnknown {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
			}
		})
	}
}

func TestAuthorizeDeleteMatchesUpdatePrecedence(t *testing.T) {
	p := newPolicy()

	// confirmed lock short-circuits ownership for delete too
	err := p.AuthorizeDelete(record("alice", true), Actor{Author: "alice", Override: overridePW})
	assert.Equal(t, apperr.KindPermission, apperr.KindOf(err))

	err = p.AuthorizeDelete(record("alice", false), Actor{Author: "bob"})
	assert.Equal(t, apperr.KindPermission, apperr.KindOf(err))

	assert.NoError(t, p.AuthorizeDelete(record("alice", false), Actor{Author: "alice"}))
	assert.NoError(t, p.AuthorizeDelete(record("alice", false), Actor{Author: "bob", Override: overridePW}))
}

func TestAuthorizeConfirmHasNoConfirmedLock(t *testing.T) {
	p := newPolicy()

	assert.NoError(t, p.AuthorizeConfirm(record("alice", false), Actor{Author: "alice"}))
	assert.NoError(t, p.AuthorizeConfirm(record("alice", true), Actor{Author: "alice"}))
	assert.NoError(t, p.AuthorizeConfirm(record("alice", false), Actor{Author: "bob", Override: overridePW}))

	err := p.AuthorizeConfirm(record("alice", false), Actor{Author: "bob"})
	assert.Equal(t, apperr.KindPermission, apperr.KindOf(err))
}

func TestAuthorizeUnconfirm(t *testing.T) {
	p := newPolicy()
	rec := record("alice", true)

	// wrong passphrase is an authentication failure before ownership is checked:
	// even the owner gets it, and so does a stranger
	err := p.AuthorizeUnconfirm(rec, Actor{Author: "alice"}, "9999")
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
	err = p.AuthorizeUnconfirm(rec, Actor{Author: "bob"}, "9999")
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))

	// right passphrase, wrong owner
	err = p.AuthorizeUnconfirm(rec, Actor{Author: "bob"}, cancelPW)
	assert.Equal(t, apperr.KindPermission, apperr.KindOf(err))

	assert.NoError(t, p.AuthorizeUnconfirm(rec, Actor{Author: "alice"}, cancelPW))
	assert.NoError(t, p.AuthorizeUnconfirm(rec, Actor{Author: "bob", Override: overridePW}, cancelPW))
}

func TestEmptyOverridePasswordDisablesOverride(t *testing.T) {
	p := New("", cancelPW)

	err := p.AuthorizeUpdate(record("alice", false), Actor{Author: "bob", Override: ""})
	assert.Equal(t, apperr.KindPermission, apperr.KindOf(err))
}
