package provider

import (
	"github.com/taggedzi/creddedupe/pkg/errors"
	"github.com/taggedzi/creddedupe/pkg/vault"
)

// Bitwarden individual-vault CSV columns.
var bitwardenColumns = []string{
	"folder", "favorite", "type", "name", "notes",
	"fields", "reprompt", "login_uri", "login_username", "login_password", "login_totp",
}

// Known-but-canonically-unmapped columns, written back verbatim on export.
var bitwardenWriteback = []string{"fields", "reprompt"}

const bitwardenExtraFavorite = "bitwarden_favorite"

type bitwarden struct{}

// NewBitwarden returns the plugin for the Bitwarden individual vault CSV format.
func NewBitwarden() Plugin { return &bitwarden{} }

func (p *bitwarden) ID() ID { return Bitwarden }

func (p *bitwarden) Headers() HeaderSpec {
	return HeaderSpec{
		Required: []string{"type", "name"},
		Optional: []string{
			"folder", "favorite", "notes", "fields", "reprompt",
			"login_uri", "login_username", "login_password", "login_totp",
		},
	}
}

func (p *bitwarden) Columns() []string { return bitwardenColumns }

func (p *bitwarden) ImportRow(row map[string]string) (vault.Item, error) {
	if missing := missingRequired(row, p.Headers()); len(missing) > 0 {
		return vault.Item{}, errors.NewMissingColumnError(Bitwarden.String(), -1, missing...)
	}

	it := vault.Item{
		Type:       vault.ParseItemType(row["type"]),
		Source:     Bitwarden.String(),
		Title:      row["name"],
		Username:   row["login_username"],
		Password:   row["login_password"],
		PrimaryURL: row["login_uri"],
		Notes:      row["notes"],
		Folder:     row["folder"],
		Favorite:   row["favorite"] == "1",
		TOTPSecret: row["login_totp"],
	}
	it.SetExtra(bitwardenExtraFavorite, row["favorite"])

	for _, col := range bitwardenWriteback {
		if v, ok := row[col]; ok {
			it.SetExtra(col, v)
		}
	}
	preserveUnknown(&it, row, bitwardenColumns)
	return it, nil
}

func (p *bitwarden) ExportRow(it vault.Item) map[string]string {
	itemType := "login"
	if it.Type == vault.TypeNote {
		itemType = "note"
	}

	favorite, ok := it.Extra[bitwardenExtraFavorite]
	if !ok {
		if it.Favorite {
			favorite = "1"
		} else {
			favorite = "0"
		}
	}

	return map[string]string{
		"folder":         it.Folder,
		"favorite":       favorite,
		"type":           itemType,
		"name":           it.Title,
		"notes":          it.Notes,
		"fields":         it.GetExtra("fields"),
		"reprompt":       it.GetExtra("reprompt"),
		"login_uri":      it.PrimaryURL,
		"login_username": it.Username,
		"login_password": it.Password,
		"login_totp":     it.TOTPSecret,
	}
}
