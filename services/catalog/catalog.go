package catalog

import (
	"fmt"

	"github.com/spf13/viper"

	"pinkmint/models"
)

// Built-in cleaning catalog. Deployments with a different package lineup
// override it with a catalog file (see Load).
var defaultPackages = []models.Package{
	{Name: "Standard", Price: 150, Description: "Routine clean of all living areas, kitchen and bathrooms"},
	{Name: "Deep Clean", Price: 250, Description: "Standard plus baseboards, vents, and behind appliances"},
	{Name: "Move-In/Move-Out", Price: 350, Description: "Full top-to-bottom clean of an empty home"},
}

var defaultAddOns = []models.AddOn{
	{Name: "Laundry", Price: 20},
	{Name: "Inside Fridge", Price: 30},
	{Name: "Inside Oven", Price: 30},
	{Name: "Interior Windows", Price: 40},
	{Name: "Garage", Price: 50},
}

// Catalog is the fixed set of bookable packages and add-ons. It is loaded once
// at startup and never mutated afterwards.
type Catalog struct {
	packages []models.Package
	addOns   []models.AddOn
	pkgIndex map[string]int
	addIndex map[string]int
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(defaultPackages, defaultAddOns)
	if err != nil {
		// The built-in data is static; a failure here is a programming error.
		panic(err)
	}
	return c
}

// New builds a catalog from the given packages and add-ons, enforcing unique
// names and non-negative prices.
func New(packages []models.Package, addOns []models.AddOn) (*Catalog, error) {
	c := &Catalog{
		packages: make([]models.Package, len(packages)),
		addOns:   make([]models.AddOn, len(addOns)),
		pkgIndex: make(map[string]int, len(packages)),
		addIndex: make(map[string]int, len(addOns)),
	}
	copy(c.packages, packages)
	copy(c.addOns, addOns)

	for i, p := range c.packages {
		if p.Name == "" {
			return nil, fmt.Errorf("catalog: package %d has no name", i)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("catalog: package %q has negative price %.2f", p.Name, p.Price)
		}
		if _, dup := c.pkgIndex[p.Name]; dup {
			return nil, fmt.Errorf("catalog: duplicate package %q", p.Name)
		}
		c.pkgIndex[p.Name] = i
	}
	for i, a := range c.addOns {
		if a.Name == "" {
			return nil, fmt.Errorf("catalog: add-on %d has no name", i)
		}
		if a.Price < 0 {
			return nil, fmt.Errorf("catalog: add-on %q has negative price %.2f", a.Name, a.Price)
		}
		if _, dup := c.addIndex[a.Name]; dup {
			return nil, fmt.Errorf("catalog: duplicate add-on %q", a.Name)
		}
		c.addIndex[a.Name] = i
	}
	return c, nil
}

// Load reads a catalog override file. An empty path returns the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("catalog: failed to read %s: %w", path, err)
	}

	var file struct {
		Packages []models.Package `mapstructure:"packages"`
		AddOns   []models.AddOn   `mapstructure:"addOns"`
	}
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("catalog: failed to parse %s: %w", path, err)
	}
	if len(file.Packages) == 0 {
		return nil, fmt.Errorf("catalog: %s defines no packages", path)
	}
	return New(file.Packages, file.AddOns)
}

// Packages returns the ordered package list.
func (c *Catalog) Packages() []models.Package {
	out := make([]models.Package, len(c.packages))
	copy(out, c.packages)
	return out
}

// AddOns returns the ordered add-on list.
func (c *Catalog) AddOns() []models.AddOn {
	out := make([]models.AddOn, len(c.addOns))
	copy(out, c.addOns)
	return out
}

// PackageByName looks up a package by its display key.
func (c *Catalog) PackageByName(name string) (models.Package, bool) {
	i, ok := c.pkgIndex[name]
	if !ok {
		return models.Package{}, false
	}
	return c.packages[i], true
}

// AddOnByName looks up an add-on by name.
func (c *Catalog) AddOnByName(name string) (models.AddOn, bool) {
	i, ok := c.addIndex[name]
	if !ok {
		return models.AddOn{}, false
	}
	return c.addOns[i], true
}
