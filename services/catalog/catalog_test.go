package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"pinkmint/models"
)

func TestDefaultCatalogOrderIsStable(t *testing.T) {
	c := Default()
	pkgs := c.Packages()
	if len(pkgs) == 0 {
		t.Fatalf("expected built-in packages")
	}
	if pkgs[0].Name != "Standard" {
		t.Fatalf("expected Standard first, got %s", pkgs[0].Name)
	}
	addOns := c.AddOns()
	if len(addOns) == 0 {
		t.Fatalf("expected built-in add-ons")
	}
	if addOns[0].Name != "Laundry" {
		t.Fatalf("expected Laundry first, got %s", addOns[0].Name)
	}
}

func TestLookupByName(t *testing.T) {
	c := Default()
	pkg, ok := c.PackageByName("Deep Clean")
	if !ok || pkg.Price != 250 {
		t.Fatalf("expected Deep Clean at 250, got %+v ok=%v", pkg, ok)
	}
	if _, ok := c.PackageByName("Platinum"); ok {
		t.Fatalf("expected unknown package to miss")
	}
	addOn, ok := c.AddOnByName("Garage")
	if !ok || addOn.Price != 50 {
		t.Fatalf("expected Garage at 50, got %+v ok=%v", addOn, ok)
	}
	if _, ok := c.AddOnByName("Helicopter"); ok {
		t.Fatalf("expected unknown add-on to miss")
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	c := Default()
	pkgs := c.Packages()
	pkgs[0].Price = 9999
	if fresh := c.Packages(); fresh[0].Price == 9999 {
		t.Fatalf("catalog mutated through accessor slice")
	}
}

func TestNewRejectsBadCatalogs(t *testing.T) {
	if _, err := New([]models.Package{{Name: "A", Price: 1}, {Name: "A", Price: 2}}, nil); err == nil {
		t.Fatalf("expected duplicate package to be rejected")
	}
	if _, err := New([]models.Package{{Name: "A", Price: -5}}, nil); err == nil {
		t.Fatalf("expected negative price to be rejected")
	}
	if _, err := New([]models.Package{{Name: "A", Price: 1}}, []models.AddOn{{Name: ""}}); err == nil {
		t.Fatalf("expected unnamed add-on to be rejected")
	}
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("load default failed: %v", err)
	}
	if _, ok := c.PackageByName("Standard"); !ok {
		t.Fatalf("expected default catalog")
	}
}

func TestLoadOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := []byte(`packages:
  - name: Basic
    price: 99
addOns:
  - name: Windows
    price: 25
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write catalog file: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load override failed: %v", err)
	}
	pkg, ok := c.PackageByName("Basic")
	if !ok || pkg.Price != 99 {
		t.Fatalf("expected Basic at 99, got %+v ok=%v", pkg, ok)
	}
	if _, ok := c.PackageByName("Standard"); ok {
		t.Fatalf("override catalog must replace the default, not merge")
	}
}
