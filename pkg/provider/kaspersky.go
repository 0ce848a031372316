package provider

import (
	"github.com/taggedzi/creddedupe/pkg/errors"
	"github.com/taggedzi/creddedupe/pkg/vault"
)

// Kaspersky CSV import columns.
var kasperskyColumns = []string{"Account", "Login", "Password", "Url"}

type kaspersky struct{}

// NewKaspersky returns the plugin for the Kaspersky CSV format.
func NewKaspersky() Plugin { return &kaspersky{} }

func (p *kaspersky) ID() ID { return Kaspersky }

func (p *kaspersky) Headers() HeaderSpec {
	return HeaderSpec{Required: kasperskyColumns}
}

func (p *kaspersky) Columns() []string { return kasperskyColumns }

func (p *kaspersky) ImportRow(row map[string]string) (vault.Item, error) {
	if missing := missingRequired(row, p.Headers()); len(missing) > 0 {
		return vault.Item{}, errors.NewMissingColumnError(Kaspersky.String(), -1, missing...)
	}

	it := vault.Item{
		Type:       vault.TypeLogin,
		Source:     Kaspersky.String(),
		Title:      row["Account"],
		Username:   row["Login"],
		Password:   row["Password"],
		PrimaryURL: row["Url"],
	}

	preserveUnknown(&it, row, kasperskyColumns)
	return it, nil
}

func (p *kaspersky) ExportRow(it vault.Item) map[string]string {
	account := it.Title
	if account == "" && it.Source != Kaspersky.String() {
		account = it.PrimaryURL
	}

	return map[string]string{
		"Account":  account,
		"Login":    it.Username,
		"Password": it.Password,
		"Url":      it.PrimaryURL,
	}
}
