package provider

import (
	"strings"

	"github.com/taggedzi/creddedupe/pkg/errors"
	"github.com/taggedzi/creddedupe/pkg/vault"
)

// Dashlane CSV template columns.
var dashlaneColumns = []string{
	"Type", "Name", "Website URL", "Username", "Email",
	"Secondary Login", "Password", "Comment", "collections",
}

// Email, Secondary Login and collections have no canonical home beyond Extra;
// they round-trip under their original names.
var dashlaneWriteback = []string{"Email", "Secondary Login", "collections"}

const (
	dashlaneExtraType = "dashlane_Type"

	// Set when the Username column was empty and the login identifier was
	// taken from Email instead, so export can leave Username empty again.
	dashlaneExtraEmailLogin = "dashlane_username_from_email"
)

type dashlane struct{}

// NewDashlane returns the plugin for the Dashlane CSV template.
func NewDashlane() Plugin { return &dashlane{} }

func (p *dashlane) ID() ID { return Dashlane }

func (p *dashlane) Headers() HeaderSpec {
	return HeaderSpec{
		Required: []string{"Type", "Name", "Website URL", "Password"},
		Optional: []string{"Username", "Email", "Secondary Login", "Comment", "collections"},
	}
}

func (p *dashlane) Columns() []string { return dashlaneColumns }

func (p *dashlane) ImportRow(row map[string]string) (vault.Item, error) {
	if missing := missingRequired(row, p.Headers()); len(missing) > 0 {
		return vault.Item{}, errors.NewMissingColumnError(Dashlane.String(), -1, missing...)
	}

	itemType := vault.TypeOther
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(row["Type"])), "login") {
		itemType = vault.TypeLogin
	}

	username := row["Username"]
	fromEmail := username == "" && row["Email"] != ""
	if fromEmail {
		username = row["Email"]
	}

	it := vault.Item{
		Type:       itemType,
		Source:     Dashlane.String(),
		Title:      row["Name"],
		Username:   username,
		Password:   row["Password"],
		PrimaryURL: row["Website URL"],
		Notes:      row["Comment"],
	}
	it.SetExtra(dashlaneExtraType, row["Type"])
	if fromEmail {
		it.SetExtra(dashlaneExtraEmailLogin, "1")
	}

	for _, col := range dashlaneWriteback {
		if v, ok := row[col]; ok {
			it.SetExtra(col, v)
		}
	}
	preserveUnknown(&it, row, dashlaneColumns)
	return it, nil
}

func (p *dashlane) ExportRow(it vault.Item) map[string]string {
	rawType, ok := it.Extra[dashlaneExtraType]
	if !ok {
		rawType = "Login"
	}

	// A login identifier borrowed from the Email column on import goes back
	// as an empty Username, matching the source row. A Username that merely
	// equals the Email is a real value and is kept.
	username := it.Username
	if it.GetExtra(dashlaneExtraEmailLogin) != "" {
		username = ""
	}

	return map[string]string{
		"Type":            rawType,
		"Name":            it.Title,
		"Website URL":     it.PrimaryURL,
		"Username":        username,
		"Email":           it.GetExtra("Email"),
		"Secondary Login": it.GetExtra("Secondary Login"),
		"Password":        it.Password,
		"Comment":         it.Notes,
		"collections":     it.GetExtra("collections"),
	}
}
