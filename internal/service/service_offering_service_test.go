package service

import (
	"errors"
	"testing"
)

func TestOfferingServiceNormalizesIcon(t *testing.T) {
	svc := NewOfferingService(setupServiceTestDB(t))

	item, err := svc.Create(OfferingInput{Title: "Web apps", Description: "Full stack builds", Icon: " CODE "})
	if err != nil {
		t.Fatalf("create service: %v", err)
	}
	if item.Icon != "code" {
		t.Fatalf("expected normalized icon, got %q", item.Icon)
	}

	blank, err := svc.Create(OfferingInput{Title: "Consulting", Description: "Advice"})
	if err != nil {
		t.Fatalf("create service: %v", err)
	}
	if blank.Icon != "default" || blank.SortOrder != 1 {
		t.Fatalf("unexpected defaults: %+v", blank)
	}

	_, err = svc.Create(OfferingInput{Title: "Bad", Description: "x", Icon: "rocket-ship"})
	if _, ok := validationFields(t, err)["icon"]; !ok {
		t.Fatalf("expected icon error, got %v", err)
	}
}

func TestOfferingServiceRequiresDescription(t *testing.T) {
	svc := NewOfferingService(setupServiceTestDB(t))

	_, err := svc.Create(OfferingInput{Title: "Only title"})
	if _, ok := validationFields(t, err)["description"]; !ok {
		t.Fatalf("expected description error, got %v", err)
	}
}

func TestOfferingServiceReorderAndDelete(t *testing.T) {
	svc := NewOfferingService(setupServiceTestDB(t))

	a, _ := svc.Create(OfferingInput{Title: "A", Description: "a"})
	b, _ := svc.Create(OfferingInput{Title: "B", Description: "b"})

	if err := svc.Reorder([]uint{b.ID, a.ID}); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	items, err := svc.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if items[0].ID != b.ID {
		t.Fatalf("expected B first, got %+v", items)
	}

	if err := svc.Delete(a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Update(a.ID, OfferingInput{Title: "A", Description: "a"}); !errors.Is(err, ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}
	total, err := svc.Count()
	if err != nil || total != 1 {
		t.Fatalf("expected 1 service, got %d (%v)", total, err)
	}
}
