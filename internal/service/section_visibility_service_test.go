package service

import (
	"errors"
	"testing"

	"github.com/sitecms/internal/db"
)

func TestSectionServiceCreateDuplicate(t *testing.T) {
	svc := NewSectionService(setupServiceTestDB(t))

	section, err := svc.Create(SectionInput{SectionID: "Pricing", Name: "Pricing"})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}
	if section.SectionID != "pricing" || !section.IsVisible {
		t.Fatalf("expected normalized visible section, got %+v", section)
	}

	if _, err := svc.Create(SectionInput{SectionID: "pricing", Name: "Again"}); !errors.Is(err, ErrSectionExists) {
		t.Fatalf("expected ErrSectionExists, got %v", err)
	}

	hidden, err := svc.Create(SectionInput{SectionID: "faq", Name: "FAQ", IsVisible: boolPtr(false)})
	if err != nil {
		t.Fatalf("create hidden section: %v", err)
	}
	if hidden.IsVisible {
		t.Fatal("expected explicit false to be stored")
	}
	reloaded, _ := svc.Get("faq")
	if reloaded.IsVisible {
		t.Fatal("expected hidden section to stay hidden after reload")
	}
}

func TestSectionServiceUnknownSectionIsVisible(t *testing.T) {
	svc := NewSectionService(setupServiceTestDB(t))

	if _, err := svc.Create(SectionInput{SectionID: "faq", Name: "FAQ", IsVisible: boolPtr(false)}); err != nil {
		t.Fatalf("create section: %v", err)
	}

	sections, err := svc.VisibilityMap()
	if err != nil {
		t.Fatalf("visibility map: %v", err)
	}
	if !sections.Visible("does-not-exist") {
		t.Fatal("expected unknown section to be visible")
	}
	if sections.Visible("faq") {
		t.Fatal("expected hidden section to stay hidden")
	}
}

func TestSectionServicePartialUpdate(t *testing.T) {
	svc := NewSectionService(setupServiceTestDB(t))

	if _, err := svc.Create(SectionInput{SectionID: "hero", Name: "Hero", Description: "Banner"}); err != nil {
		t.Fatalf("create section: %v", err)
	}

	updated, err := svc.Update("hero", SectionPatch{IsVisible: boolPtr(false)})
	if err != nil {
		t.Fatalf("update section: %v", err)
	}
	if updated.IsVisible || updated.Name != "Hero" || updated.Description != "Banner" {
		t.Fatalf("unexpected partial update: %+v", updated)
	}

	if _, err := svc.Update("hero", SectionPatch{Name: strPtr("  ")}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Update("nope", SectionPatch{}); !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
}

func TestSectionServiceBulkToggleRollsBack(t *testing.T) {
	gdb := setupServiceTestDB(t)
	if _, err := db.EnsureSections(gdb); err != nil {
		t.Fatalf("seed sections: %v", err)
	}
	svc := NewSectionService(gdb)

	_, err := svc.BulkToggle([]SectionToggle{
		{SectionID: db.SectionHero, IsVisible: false},
		{SectionID: "missing", IsVisible: false},
	})
	if !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
	if hero, _ := svc.Get(db.SectionHero); hero == nil || !hero.IsVisible {
		t.Fatal("expected hero toggle to be rolled back")
	}

	items, err := svc.BulkToggle([]SectionToggle{
		{SectionID: db.SectionHero, IsVisible: false},
		{SectionID: db.SectionTestimonials, IsVisible: true},
	})
	if err != nil {
		t.Fatalf("bulk toggle: %v", err)
	}
	if len(items) != len(db.DefaultSections) {
		t.Fatalf("expected full list back, got %d", len(items))
	}

	visibility, err := svc.VisibilityMap()
	if err != nil {
		t.Fatalf("visibility map: %v", err)
	}
	if visibility[db.SectionHero] || !visibility[db.SectionTestimonials] {
		t.Fatalf("unexpected visibility %v", visibility)
	}
}

func TestSectionServiceDelete(t *testing.T) {
	svc := NewSectionService(setupServiceTestDB(t))

	if _, err := svc.Create(SectionInput{SectionID: "blog", Name: "Blog"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete("blog"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete("blog"); !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
	if _, err := svc.Create(SectionInput{SectionID: "blog", Name: "Blog"}); err != nil {
		t.Fatalf("expected section id to be reusable: %v", err)
	}
}
