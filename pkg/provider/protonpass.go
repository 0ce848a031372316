package provider

import (
	"strings"

	"github.com/taggedzi/creddedupe/pkg/errors"
	"github.com/taggedzi/creddedupe/pkg/vault"
)

// Proton Pass CSV columns. Export intentionally drops type, createTime and
// modifyTime: the type still decides grouping eligibility and the timestamps
// still drive preferred-record selection, they are just not written back.
var (
	protonImportColumns = []string{
		"type", "name", "url", "email", "username", "password",
		"note", "totp", "createTime", "modifyTime", "vault",
	}
	protonExportColumns = []string{
		"name", "url", "email", "username", "password", "note", "totp", "vault",
	}
)

// Extra keys used to round-trip Proton-specific fields that have no (exported)
// canonical home.
const (
	protonExtraType       = "proton_type"
	protonExtraEmail      = "proton_email"
	protonExtraCreateTime = "proton_createTime"
	protonExtraModifyTime = "proton_modifyTime"
	protonExtraVault      = "proton_vault"
	protonExtraRawURL     = "proton_raw_url"
	protonExtraTOTP       = "proton_totp"
)

type protonPass struct{}

// NewProtonPass returns the plugin for the Proton Pass CSV format, the
// baseline provider.
func NewProtonPass() Plugin { return &protonPass{} }

func (p *protonPass) ID() ID { return ProtonPass }

func (p *protonPass) Headers() HeaderSpec {
	return HeaderSpec{Required: protonImportColumns}
}

func (p *protonPass) Columns() []string { return protonExportColumns }

func (p *protonPass) ImportRow(row map[string]string) (vault.Item, error) {
	if missing := missingRequired(row, p.Headers()); len(missing) > 0 {
		return vault.Item{}, errors.NewMissingColumnError(ProtonPass.String(), -1, missing...)
	}

	rawURL := row["url"]
	totpRaw := row["totp"]

	it := vault.Item{
		Type:       vault.ParseItemType(row["type"]),
		Source:     ProtonPass.String(),
		Title:      row["name"],
		Username:   row["username"],
		Password:   row["password"],
		PrimaryURL: vault.NormalizeURL(rawURL),
		Notes:      row["note"],
	}

	if strings.HasPrefix(totpRaw, "otpauth://") {
		it.TOTPURI = totpRaw
	} else {
		it.TOTPSecret = totpRaw
	}

	if ms, ok := vault.ParseTimestamp(row["createTime"]); ok {
		it.CreatedAt = ms
	}
	if ms, ok := vault.ParseTimestamp(row["modifyTime"]); ok {
		it.UpdatedAt = ms
	}

	it.SetExtra(protonExtraType, row["type"])
	it.SetExtra(protonExtraEmail, row["email"])
	it.SetExtra(protonExtraCreateTime, row["createTime"])
	it.SetExtra(protonExtraModifyTime, row["modifyTime"])
	it.SetExtra(protonExtraVault, row["vault"])
	it.SetExtra(protonExtraRawURL, rawURL)
	it.SetExtra(protonExtraTOTP, totpRaw)

	preserveUnknown(&it, row, protonImportColumns)
	return it, nil
}

func (p *protonPass) ExportRow(it vault.Item) map[string]string {
	// Prefer the original Proton strings so round trips reproduce the exact
	// values the user exported, quirks included.
	rawURL := it.GetExtra(protonExtraRawURL)
	if rawURL == "" {
		rawURL = it.PrimaryURL
	}

	totp := it.GetExtra(protonExtraTOTP)
	if totp == "" {
		if it.TOTPURI != "" {
			totp = it.TOTPURI
		} else {
			totp = it.TOTPSecret
		}
	}

	return map[string]string{
		"name":     it.Title,
		"url":      rawURL,
		"email":    it.GetExtra(protonExtraEmail),
		"username": it.Username,
		"password": it.Password,
		"note":     it.Notes,
		"totp":     totp,
		"vault":    it.GetExtra(protonExtraVault),
	}
}
