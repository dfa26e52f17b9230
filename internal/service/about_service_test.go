package service

import (
	"errors"
	"testing"
)

func TestAboutServiceReturnsDefaults(t *testing.T) {
	svc := NewAboutService(setupServiceTestDB(t))

	about, err := svc.Get()
	if err != nil {
		t.Fatalf("get about: %v", err)
	}
	if about.ID != 0 || about.Title != DefaultAbout().Title {
		t.Fatalf("expected unsaved defaults, got %+v", about)
	}
}

func TestAboutServiceSaveUpserts(t *testing.T) {
	svc := NewAboutService(setupServiceTestDB(t))

	first, err := svc.Save(AboutInput{Title: "Who we are", Features: []string{" Fast ", "", "Reliable"}, ButtonURL: "/contact"})
	if err != nil {
		t.Fatalf("save about: %v", err)
	}
	if len(first.Features) != 2 || first.Features[0] != "Fast" {
		t.Fatalf("unexpected features %v", first.Features)
	}

	second, err := svc.Save(AboutInput{Title: "Who we really are", Description: "Story"})
	if err != nil {
		t.Fatalf("save about: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected singleton update, ids %d vs %d", first.ID, second.ID)
	}

	loaded, err := svc.Get()
	if err != nil {
		t.Fatalf("get about: %v", err)
	}
	if loaded.Title != "Who we really are" || len(loaded.Features) != 0 {
		t.Fatalf("unexpected stored about %+v", loaded)
	}
}

func TestAboutServiceRequiresTitle(t *testing.T) {
	svc := NewAboutService(setupServiceTestDB(t))

	_, err := svc.Save(AboutInput{ButtonURL: "javascript:alert(1)"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields := validationFields(t, err)
	if fields["title"] == "" || fields["buttonUrl"] == "" {
		t.Fatalf("expected title and buttonUrl errors, got %v", fields)
	}
}
