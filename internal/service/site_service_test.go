package service

import (
	"testing"

	"github.com/sitecms/internal/db"
)

func TestSiteServiceOmitsHiddenSections(t *testing.T) {
	gdb := setupServiceTestDB(t)
	if _, err := db.EnsureSections(gdb); err != nil {
		t.Fatalf("seed sections: %v", err)
	}

	if _, err := NewOfferingService(gdb).Create(OfferingInput{Title: "Design", Description: "UI"}); err != nil {
		t.Fatalf("create service: %v", err)
	}
	if _, err := NewTeamMemberService(gdb).Create(TeamMemberInput{Name: "Ada", Role: "CTO"}); err != nil {
		t.Fatalf("create member: %v", err)
	}
	if _, err := NewSectionService(gdb).Update(db.SectionTeam, SectionPatch{IsVisible: boolPtr(false)}); err != nil {
		t.Fatalf("hide team: %v", err)
	}

	view, err := NewSiteService(gdb).Build()
	if err != nil {
		t.Fatalf("build site: %v", err)
	}
	if view.Team != nil {
		t.Fatalf("expected hidden team to be omitted, got %+v", view.Team)
	}
	if len(view.Services) != 1 {
		t.Fatalf("expected services to be included, got %+v", view.Services)
	}
	if view.About == nil || view.About.Title != DefaultAbout().Title {
		t.Fatalf("expected default about block, got %+v", view.About)
	}
	if view.Sections[db.SectionTeam] || !view.Sections[db.SectionHero] {
		t.Fatalf("unexpected section map %v", view.Sections)
	}
	if view.Settings.SiteName == "" {
		t.Fatal("expected default settings")
	}
}

func TestSiteServiceTreatsUnregisteredSectionsAsVisible(t *testing.T) {
	gdb := setupServiceTestDB(t)

	view, err := NewSiteService(gdb).Build()
	if err != nil {
		t.Fatalf("build site: %v", err)
	}
	if view.Services == nil || view.Portfolio == nil || view.About == nil {
		t.Fatalf("expected all blocks without registered sections, got %+v", view)
	}
}

func TestDashboardServiceStats(t *testing.T) {
	gdb := setupServiceTestDB(t)
	if _, err := db.EnsureSections(gdb); err != nil {
		t.Fatalf("seed sections: %v", err)
	}
	if _, err := NewPageService(gdb).Create(PageInput{Title: "A", Slug: "a", Status: "Published"}); err != nil {
		t.Fatalf("create page: %v", err)
	}
	if _, err := NewPortfolioService(gdb).Create(PortfolioInput{Title: "P", Category: "Web", Featured: true}); err != nil {
		t.Fatalf("create portfolio: %v", err)
	}

	stats, err := NewDashboardService(gdb).Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Pages[db.PageStatusPublished] != 1 || stats.Pages[db.PageStatusDraft] != 0 {
		t.Fatalf("unexpected page stats %v", stats.Pages)
	}
	if stats.PortfolioItems != 1 || stats.FeaturedPortfolio != 1 {
		t.Fatalf("unexpected portfolio stats %+v", stats)
	}
	if stats.VisibleSections != int64(len(db.DefaultSections)-1) {
		t.Fatalf("expected testimonials hidden by default, got %d visible", stats.VisibleSections)
	}
}
