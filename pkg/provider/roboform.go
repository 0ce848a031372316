package provider

import (
	"github.com/taggedzi/creddedupe/pkg/errors"
	"github.com/taggedzi/creddedupe/pkg/vault"
)

// RoboForm CSV columns. Imports accept both the older "Password" and the
// newer "Pwd" password columns; exports use the newer shape.
var (
	roboFormKnownColumns = []string{
		"Name", "URL", "Login", "Password", "Pwd", "Note", "Folder", "MatchUrl", "RfFieldsV2",
	}
	roboFormExportColumns = []string{"Name", "URL", "Login", "Pwd", "Note", "Folder"}
)

var roboFormWriteback = []string{"MatchUrl", "RfFieldsV2"}

type roboForm struct{}

// NewRoboForm returns the plugin for RoboForm CSV formats.
func NewRoboForm() Plugin { return &roboForm{} }

func (p *roboForm) ID() ID { return RoboForm }

func (p *roboForm) Headers() HeaderSpec {
	return HeaderSpec{
		Required: []string{"Name", "URL", "Login"},
		Optional: []string{"MatchUrl", "Note", "Folder", "RfFieldsV2", "Password", "Pwd"},
	}
}

func (p *roboForm) Columns() []string { return roboFormExportColumns }

func (p *roboForm) ImportRow(row map[string]string) (vault.Item, error) {
	if missing := missingRequired(row, p.Headers()); len(missing) > 0 {
		return vault.Item{}, errors.NewMissingColumnError(RoboForm.String(), -1, missing...)
	}
	if _, old := row["Password"]; !old {
		if _, renamed := row["Pwd"]; !renamed {
			return vault.Item{}, errors.NewMissingColumnError(RoboForm.String(), -1, "Password")
		}
	}

	password := row["Password"]
	if password == "" {
		password = row["Pwd"]
	}

	it := vault.Item{
		Type:       vault.TypeLogin,
		Source:     RoboForm.String(),
		Title:      row["Name"],
		Username:   row["Login"],
		Password:   password,
		PrimaryURL: row["URL"],
		Notes:      row["Note"],
		Folder:     row["Folder"],
	}

	// MatchUrl is an alternate URL the entry also applies to. It feeds the
	// grouping and merge machinery as a secondary URL and still round-trips
	// verbatim through Extra.
	if m := row["MatchUrl"]; m != "" && m != row["URL"] {
		it.AddSecondaryURL(m)
	}

	for _, col := range roboFormWriteback {
		if v, ok := row[col]; ok {
			it.SetExtra(col, v)
		}
	}
	preserveUnknown(&it, row, roboFormKnownColumns)
	return it, nil
}

func (p *roboForm) ExportRow(it vault.Item) map[string]string {
	name := it.Title
	if name == "" && it.Source != RoboForm.String() {
		name = it.PrimaryURL
	}

	return map[string]string{
		"Name":   name,
		"URL":    it.PrimaryURL,
		"Login":  it.Username,
		"Pwd":    it.Password,
		"Note":   it.Notes,
		"Folder": it.Folder,
	}
}
