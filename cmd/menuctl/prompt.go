package main

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/nhle/menu-catalog/internal/model"
	"github.com/nhle/menu-catalog/internal/validation"
)

var errNoCategories = errors.New("no categories to add the item to; add one first")

// runForm runs f on the command's terminal streams.
func runForm(cmd *cobra.Command, f *huh.Form) error {
	return f.WithInput(cmd.InOrStdin()).WithOutput(cmd.OutOrStdout()).Run()
}

// fieldRule adapts a form validator to a single huh field. The typed value
// is applied to a copy of the form, and the first message whose key starts
// with one of prefixes becomes the field error.
func fieldRule[F any](form *F, set func(*F, string), validate func(F) validation.Errors, prefixes ...string) func(string) error {
	return func(s string) error {
		f := *form
		set(&f, s)
		errs := validate(f)
		for _, k := range errs.Fields() {
			for _, p := range prefixes {
				if strings.HasPrefix(k, p) {
					return errors.New(errs[k])
				}
			}
		}
		return nil
	}
}

func categoryPrompt(form *validation.CategoryForm, menuID *string, menus []model.Menu) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Name").
			Value(&form.Name).
			Validate(fieldRule(form, func(f *validation.CategoryForm, s string) { f.Name = s },
				validation.ValidateCategory, validation.FieldName)),
		huh.NewText().
			Title("Description").
			Placeholder("At least 10 characters").
			Value(&form.Description).
			Validate(fieldRule(form, func(f *validation.CategoryForm, s string) { f.Description = s },
				validation.ValidateCategory, validation.FieldDescription)),
	}
	if len(menus) > 0 {
		opts := []huh.Option[string]{huh.NewOption("Active menu", "")}
		for _, m := range menus {
			opts = append(opts, huh.NewOption(m.Name, m.ID))
		}
		fields = append(fields, huh.NewSelect[string]().
			Title("Menu").
			Options(opts...).
			Value(menuID))
	}
	fields = append(fields, huh.NewInput().
		Title("Tax category").
		Placeholder("Optional").
		Value(&form.TaxCategory))

	return huh.NewForm(huh.NewGroup(fields...))
}

func itemPrompt(form *validation.ItemForm, prices *string, categories []model.Category) (*huh.Form, error) {
	if len(categories) == 0 {
		return nil, errNoCategories
	}
	opts := make([]huh.Option[string], len(categories))
	for i, c := range categories {
		opts[i] = huh.NewOption(c.Name, c.ID)
	}
	if form.Category == "" {
		form.Category = categories[0].ID
	}

	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Value(&form.Name).
			Validate(fieldRule(form, func(f *validation.ItemForm, s string) { f.Name = s },
				validation.ValidateItem, validation.FieldName)),
		huh.NewText().
			Title("Description").
			Placeholder("At least 10 characters").
			Value(&form.Description).
			Validate(fieldRule(form, func(f *validation.ItemForm, s string) { f.Description = s },
				validation.ValidateItem, validation.FieldDescription)),
		huh.NewSelect[string]().
			Title("Category").
			Options(opts...).
			Value(&form.Category),
		huh.NewText().
			Title("Price").
			Description("A single price, or one name=price per line").
			Value(prices).
			Validate(fieldRule(form, func(f *validation.ItemForm, s string) { f.PriceOptions = parsePrices(s) },
				validation.ValidateItem, validation.FieldPrice)),
		huh.NewConfirm().
			Title("Featured?").
			Value(&form.IsFeatured),
	)), nil
}

func modifierPrompt(form *validation.ModifierForm, options *string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Value(&form.Name).
			Validate(fieldRule(form, func(f *validation.ModifierForm, s string) { f.Name = s },
				validation.ValidateModifier, validation.FieldName)),
		huh.NewSelect[string]().
			Title("Type").
			Options(
				huh.NewOption("Optional", model.ModifierTypeOptional),
				huh.NewOption("Required", model.ModifierTypeRequired),
			).
			Value(&form.Type),
		huh.NewConfirm().
			Title("Allow several options?").
			Value(&form.AllowMultiple),
		huh.NewText().
			Title("Options").
			Description("One name=price:unit per line").
			Value(options).
			Validate(fieldRule(form, func(f *validation.ModifierForm, s string) { f.Options = modifierOptions(splitEntries(s)) },
				validation.ValidateModifier, validation.FieldOptions)),
	))
}

// splitEntries splits text on newlines and commas, dropping blanks.
func splitEntries(text string) []string {
	var out []string
	for _, e := range strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == ',' }) {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}

// priceOptions builds price rows from a single price or name=price entries.
func priceOptions(price string, entries []string) []validation.PriceOptionForm {
	if len(entries) == 0 {
		return []validation.PriceOptionForm{{Price: strings.TrimSpace(price)}}
	}
	opts := make([]validation.PriceOptionForm, 0, len(entries))
	for _, e := range entries {
		name, p, _ := strings.Cut(e, "=")
		opts = append(opts, validation.PriceOptionForm{Name: strings.TrimSpace(name), Price: strings.TrimSpace(p)})
	}
	return opts
}

// parsePrices reads the price field of the item prompt.
func parsePrices(text string) []validation.PriceOptionForm {
	entries := splitEntries(text)
	if len(entries) == 1 && !strings.Contains(entries[0], "=") {
		return priceOptions(entries[0], nil)
	}
	return priceOptions("", entries)
}

// modifierOptions builds option rows from name=price:unit entries.
func modifierOptions(entries []string) []validation.ModifierOptionForm {
	var opts []validation.ModifierOptionForm
	for _, e := range entries {
		name, rest, _ := strings.Cut(e, "=")
		price, unit, _ := strings.Cut(rest, ":")
		opts = append(opts, validation.ModifierOptionForm{
			Name:  strings.TrimSpace(name),
			Price: strings.TrimSpace(price),
			Unit:  strings.TrimSpace(unit),
		})
	}
	return opts
}

func promptEntries(entries []string) string {
	return strings.Join(entries, "\n")
}
