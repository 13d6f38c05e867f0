package migrate

import (
	"testing"

	"gorm.io/gorm"

	"github.com/prodboard/prodboard/internal/models"
)

func seedProducts(t *testing.T, db *gorm.DB) []models.Product {
	t.Helper()
	sourceIDs := []int64{101, 102}
	products := []models.Product{
		{Name: "Mobile App", GitlabIssueID: &sourceIDs[0]},
		{Name: "Web Dashboard", GitlabIssueID: &sourceIDs[1]},
		{Name: "Partner API"},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			t.Fatalf("Failed to seed product: %v", err)
		}
	}
	return products
}

func TestResolver_NumericExactMatch(t *testing.T) {
	db := newTestDB(t)
	products := seedProducts(t, db)
	resolver := NewProductResolver(db)

	id, err := resolver.Resolve("102")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if id == nil || *id != products[1].ID {
		t.Errorf("Expected Web Dashboard (%d), got %v", products[1].ID, id)
	}

	// Numeric lookup never falls back to name matching
	id, err = resolver.Resolve("999")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if id != nil {
		t.Errorf("Expected nil for unknown source id, got %v", *id)
	}
}

func TestResolver_NameSubstringMatch(t *testing.T) {
	db := newTestDB(t)
	products := seedProducts(t, db)
	resolver := NewProductResolver(db)

	cases := []struct {
		ref  string
		want uint
	}{
		{"Mobile App", products[0].ID},
		{"mobile", products[0].ID},
		{"DASHBOARD", products[1].ID},
		{"partner api", products[2].ID},
	}
	for _, c := range cases {
		id, err := resolver.Resolve(c.ref)
		if err != nil {
			t.Fatalf("Resolve(%q) failed: %v", c.ref, err)
		}
		if id == nil || *id != c.want {
			t.Errorf("Resolve(%q) = %v, want %d", c.ref, id, c.want)
		}
	}
}

func TestResolver_NoMatchIsNotAnError(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db)
	resolver := NewProductResolver(db)

	id, err := resolver.Resolve("completely unknown product")
	if err != nil {
		t.Fatalf("Expected no error on miss, got %v", err)
	}
	if id != nil {
		t.Errorf("Expected nil on miss, got %v", *id)
	}
}

func TestResolver_EmptyRef(t *testing.T) {
	db := newTestDB(t)
	resolver := NewProductResolver(db)

	id, err := resolver.Resolve("")
	if err != nil || id != nil {
		t.Errorf("Expected (nil, nil) for empty ref, got (%v, %v)", id, err)
	}
	id, err = resolver.Resolve("   ")
	if err != nil || id != nil {
		t.Errorf("Expected (nil, nil) for blank ref, got (%v, %v)", id, err)
	}
}
