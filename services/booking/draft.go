package booking

import (
	"fmt"
	"strings"

	"pinkmint/models"
	"pinkmint/services/catalog"
)

// NewDraft returns an empty draft ready for user input.
func NewDraft() *models.BookingDraft {
	return &models.BookingDraft{
		Selection: models.Selection{AddOns: make(map[string]models.AddOn)},
	}
}

// ResetDraft clears a draft back to its initial empty values.
func ResetDraft(d *models.BookingDraft) {
	*d = *NewDraft()
}

// SetField assigns one draft attribute by its form field name. Field names
// match the JSON keys the form posts.
func SetField(d *models.BookingDraft, field, value string) error {
	switch field {
	case "name":
		d.Name = value
	case "email":
		d.Email = value
	case "phone":
		d.Phone = value
	case "address":
		d.Address = value
	case "city":
		d.City = value
	case "state":
		d.State = value
	case "zip":
		d.Zip = value
	case "homeType":
		d.HomeType = value
	case "floorType":
		d.FloorType = value
	case "bedrooms":
		d.Bedrooms = value
	case "bathrooms":
		d.Bathrooms = value
	case "squareFootage":
		d.SquareFootage = value
	case "date":
		d.Date = value
	case "time":
		d.Time = value
	case "specifics":
		d.Specifics = value
	default:
		return fmt.Errorf("unknown draft field %q", field)
	}
	return nil
}

// SelectPackage replaces the current package selection. Re-selecting the same
// package is a no-op; a different one replaces, never accumulates.
func SelectPackage(d *models.BookingDraft, cat *catalog.Catalog, name string) error {
	pkg, ok := cat.PackageByName(name)
	if !ok {
		return fmt.Errorf("package %q not in catalog", name)
	}
	d.Selection.Package = &pkg
	d.Total = ComputeTotal(d.Selection)
	return nil
}

// ClearPackage removes the package selection.
func ClearPackage(d *models.BookingDraft) {
	d.Selection.Package = nil
	d.Total = ComputeTotal(d.Selection)
}

// ToggleAddOn flips membership of the named add-on in the selection set.
// Toggling twice restores the prior state.
func ToggleAddOn(d *models.BookingDraft, cat *catalog.Catalog, name string) error {
	if d.Selection.AddOns == nil {
		d.Selection.AddOns = make(map[string]models.AddOn)
	}
	if _, on := d.Selection.AddOns[name]; on {
		delete(d.Selection.AddOns, name)
	} else {
		addOn, ok := cat.AddOnByName(name)
		if !ok {
			return fmt.Errorf("add-on %q not in catalog", name)
		}
		d.Selection.AddOns[name] = addOn
	}
	d.Total = ComputeTotal(d.Selection)
	return nil
}

// SelectedAddOnNames returns the selected add-on names, comma-joined, for logs.
func SelectedAddOnNames(d *models.BookingDraft) string {
	names := make([]string, 0, len(d.Selection.AddOns))
	for name := range d.Selection.AddOns {
		names = append(names, name)
	}
	return strings.Join(names, ",")
}
