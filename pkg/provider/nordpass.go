package provider

import (
	"strings"

	"github.com/taggedzi/creddedupe/pkg/errors"
	"github.com/taggedzi/creddedupe/pkg/vault"
)

// NordPass CSV template columns, covering logins, cards and identities.
var nordPassColumns = []string{
	"name", "url", "username", "password", "note",
	"cardholdername", "cardnumber", "cvc", "expirydate", "zipcode",
	"folder", "full_name", "phone_number", "email",
	"address1", "address2", "city", "country", "state",
}

// Card and identity fields round-trip through Extra under their original names.
var nordPassWriteback = []string{
	"cardholdername", "cardnumber", "cvc", "expirydate", "zipcode",
	"full_name", "phone_number", "email",
	"address1", "address2", "city", "country", "state",
}

type nordPass struct{}

// NewNordPass returns the plugin for the NordPass CSV template.
func NewNordPass() Plugin { return &nordPass{} }

func (p *nordPass) ID() ID { return NordPass }

func (p *nordPass) Headers() HeaderSpec {
	return HeaderSpec{
		Required: []string{"name", "url", "username", "password"},
		Optional: []string{
			"note", "cardholdername", "cardnumber", "cvc", "expirydate",
			"zipcode", "folder", "full_name", "phone_number", "email",
			"address1", "address2", "city", "country", "state",
		},
	}
}

func (p *nordPass) Columns() []string { return nordPassColumns }

func (p *nordPass) ImportRow(row map[string]string) (vault.Item, error) {
	if missing := missingRequired(row, p.Headers()); len(missing) > 0 {
		return vault.Item{}, errors.NewMissingColumnError(NordPass.String(), -1, missing...)
	}

	// Infer the item type from which template fields are populated.
	itemType := vault.TypeLogin
	switch {
	case anyNonEmpty(row, "cardnumber", "cardholdername"):
		itemType = vault.TypeCard
	case anyNonEmpty(row, "full_name", "address1", "city"):
		itemType = vault.TypeIdentity
	}

	it := vault.Item{
		Type:       itemType,
		Source:     NordPass.String(),
		Title:      row["name"],
		Username:   row["username"],
		Password:   row["password"],
		PrimaryURL: row["url"],
		Notes:      row["note"],
		Folder:     row["folder"],
	}

	for _, col := range nordPassWriteback {
		if v, ok := row[col]; ok {
			it.SetExtra(col, v)
		}
	}
	preserveUnknown(&it, row, nordPassColumns)
	return it, nil
}

func (p *nordPass) ExportRow(it vault.Item) map[string]string {
	out := map[string]string{
		"name":     it.Title,
		"url":      it.PrimaryURL,
		"username": it.Username,
		"password": it.Password,
		"note":     it.Notes,
		"folder":   it.Folder,
	}
	for _, col := range nordPassWriteback {
		out[col] = it.GetExtra(col)
	}
	return out
}

func anyNonEmpty(row map[string]string, cols ...string) bool {
	for _, col := range cols {
		if strings.TrimSpace(row[col]) != "" {
			return true
		}
	}
	return false
}
