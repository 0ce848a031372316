package provider

import (
	"github.com/taggedzi/creddedupe/pkg/errors"
	"github.com/taggedzi/creddedupe/pkg/vault"
)

// Apple Passwords / Safari CSV columns.
var appleColumns = []string{"Title", "URL", "Username", "Password", "Notes", "OTPAuth"}

type applePasswords struct{}

// NewApplePasswords returns the plugin for the Apple Passwords / Safari CSV format.
func NewApplePasswords() Plugin { return &applePasswords{} }

func (p *applePasswords) ID() ID { return ApplePasswords }

func (p *applePasswords) Headers() HeaderSpec {
	return HeaderSpec{
		Required: []string{"Title", "URL", "Username", "Password"},
		Optional: []string{"Notes", "OTPAuth"},
	}
}

func (p *applePasswords) Columns() []string { return appleColumns }

func (p *applePasswords) ImportRow(row map[string]string) (vault.Item, error) {
	if missing := missingRequired(row, p.Headers()); len(missing) > 0 {
		return vault.Item{}, errors.NewMissingColumnError(ApplePasswords.String(), -1, missing...)
	}

	it := vault.Item{
		Type:       vault.TypeLogin,
		Source:     ApplePasswords.String(),
		Title:      row["Title"],
		Username:   row["Username"],
		Password:   row["Password"],
		PrimaryURL: row["URL"],
		Notes:      row["Notes"],
		TOTPURI:    row["OTPAuth"],
	}

	preserveUnknown(&it, row, appleColumns)
	return it, nil
}

func (p *applePasswords) ExportRow(it vault.Item) map[string]string {
	title := it.Title
	if title == "" && it.Source != ApplePasswords.String() {
		title = it.PrimaryURL
	}

	return map[string]string{
		"Title":    title,
		"URL":      it.PrimaryURL,
		"Username": it.Username,
		"Password": it.Password,
		"Notes":    it.Notes,
		"OTPAuth":  it.TOTPURI,
	}
}
