package provider

import (
	"github.com/taggedzi/creddedupe/pkg/errors"
	"github.com/taggedzi/creddedupe/pkg/vault"
)

// LastPass export columns. The freeform "extra" column carries the notes.
var lastPassColumns = []string{"url", "username", "password", "totp", "extra", "name", "grouping", "fav"}

// lastPassExtraFav round-trips the raw fav value, which the boolean Favorite
// cannot distinguish from "0" vs empty.
const lastPassExtraFav = "lastpass_fav"

type lastPass struct{}

// NewLastPass returns the plugin for the LastPass CSV format.
func NewLastPass() Plugin { return &lastPass{} }

func (p *lastPass) ID() ID { return LastPass }

func (p *lastPass) Headers() HeaderSpec {
	return HeaderSpec{
		Required: []string{"url", "username", "password"},
		Optional: []string{"totp", "extra", "name", "grouping", "fav"},
	}
}

func (p *lastPass) Columns() []string { return lastPassColumns }

func (p *lastPass) ImportRow(row map[string]string) (vault.Item, error) {
	if missing := missingRequired(row, p.Headers()); len(missing) > 0 {
		return vault.Item{}, errors.NewMissingColumnError(LastPass.String(), -1, missing...)
	}

	it := vault.Item{
		Type:       vault.TypeLogin,
		Source:     LastPass.String(),
		Title:      row["name"],
		Username:   row["username"],
		Password:   row["password"],
		PrimaryURL: row["url"],
		Notes:      row["extra"],
		Folder:     row["grouping"],
		Favorite:   row["fav"] == "1",
		TOTPSecret: row["totp"],
	}
	it.SetExtra(lastPassExtraFav, row["fav"])

	preserveUnknown(&it, row, lastPassColumns)
	return it, nil
}

func (p *lastPass) ExportRow(it vault.Item) map[string]string {
	fav, ok := it.Extra[lastPassExtraFav]
	if !ok {
		// Foreign record: synthesize from the canonical flag.
		if it.Favorite {
			fav = "1"
		} else {
			fav = "0"
		}
	}

	name := it.Title
	if name == "" && it.Source != LastPass.String() {
		name = it.PrimaryURL
	}

	return map[string]string{
		"url":      it.PrimaryURL,
		"username": it.Username,
		"password": it.Password,
		"totp":     it.TOTPSecret,
		"extra":    it.Notes,
		"name":     name,
		"grouping": it.Folder,
		"fav":      fav,
	}
}
