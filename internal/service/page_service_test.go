package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/sitecms/internal/db"
)

func TestPageServiceCreateRejectsInvalidSlug(t *testing.T) {
	svc := NewPageService(setupServiceTestDB(t))

	_, err := svc.Create(PageInput{Title: "About", Slug: "About Us!", Content: "hi"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := validationFields(t, err)["slug"]; !ok {
		t.Fatalf("expected slug field error, got %v", err)
	}
}

func TestPageServiceCreateDefaultsToDraft(t *testing.T) {
	svc := NewPageService(setupServiceTestDB(t))

	page, err := svc.Create(PageInput{Title: " Pricing ", Slug: "pricing", Content: "# Plans\nStarter and **Pro**"})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	if page.Status != db.PageStatusDraft || page.PublishedAt != nil {
		t.Fatalf("expected draft without publish time, got %+v", page)
	}
	if page.Title != "Pricing" {
		t.Fatalf("expected trimmed title, got %q", page.Title)
	}
	if page.Summary != "Plans Starter and Pro" {
		t.Fatalf("unexpected summary %q", page.Summary)
	}
}

func TestPageServiceDuplicateSlug(t *testing.T) {
	svc := NewPageService(setupServiceTestDB(t))

	if _, err := svc.Create(PageInput{Title: "A", Slug: "same"}); err != nil {
		t.Fatalf("create first page: %v", err)
	}
	if _, err := svc.Create(PageInput{Title: "B", Slug: "same"}); !errors.Is(err, ErrPageSlugTaken) {
		t.Fatalf("expected ErrPageSlugTaken, got %v", err)
	}
}

func TestPageServiceSlugReusableAfterDelete(t *testing.T) {
	svc := NewPageService(setupServiceTestDB(t))

	page, err := svc.Create(PageInput{Title: "Old", Slug: "recycled"})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	if err := svc.Delete(page.ID); err != nil {
		t.Fatalf("delete page: %v", err)
	}
	if _, err := svc.Create(PageInput{Title: "New", Slug: "recycled"}); err != nil {
		t.Fatalf("expected slug to be reusable, got %v", err)
	}
}

func TestPageServiceUpdatePublishesOnce(t *testing.T) {
	svc := NewPageService(setupServiceTestDB(t))

	page, err := svc.Create(PageInput{Title: "Launch", Slug: "launch"})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}

	published, err := svc.Update(page.ID, PageInput{Title: "Launch", Slug: "launch", Status: "published"})
	if err != nil {
		t.Fatalf("publish page: %v", err)
	}
	if published.Status != db.PageStatusPublished || published.PublishedAt == nil {
		t.Fatalf("expected published page with timestamp, got %+v", published)
	}
	first := *published.PublishedAt

	again, err := svc.Update(page.ID, PageInput{Title: "Launch v2", Slug: "launch", Status: "Published"})
	if err != nil {
		t.Fatalf("update page: %v", err)
	}
	if !again.PublishedAt.Equal(first) {
		t.Fatalf("publish time changed: %v -> %v", first, again.PublishedAt)
	}

	if _, err := svc.Update(9999, PageInput{Title: "x", Slug: "x"}); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}

func TestPageServiceRejectsUnknownStatus(t *testing.T) {
	svc := NewPageService(setupServiceTestDB(t))

	_, err := svc.Create(PageInput{Title: "X", Slug: "x", Status: "archived"})
	if _, ok := validationFields(t, err)["status"]; !ok {
		t.Fatalf("expected status field error, got %v", err)
	}
}

func TestPageServiceListFiltersAndPaginates(t *testing.T) {
	svc := NewPageService(setupServiceTestDB(t))

	for i, slug := range []string{"one", "two", "three"} {
		status := db.PageStatusDraft
		if i != 1 {
			status = db.PageStatusPublished
		}
		if _, err := svc.Create(PageInput{Title: strings.ToUpper(slug), Slug: slug, Status: status}); err != nil {
			t.Fatalf("create page: %v", err)
		}
	}

	result, err := svc.List(PageFilter{Status: "published", PerPage: 1})
	if err != nil {
		t.Fatalf("list pages: %v", err)
	}
	if result.Total != 2 || result.TotalPages != 2 || len(result.Items) != 1 {
		t.Fatalf("unexpected pagination: %+v", result)
	}

	searched, err := svc.List(PageFilter{Search: "TWO"})
	if err != nil {
		t.Fatalf("search pages: %v", err)
	}
	if searched.Total != 1 || searched.Items[0].Slug != "two" {
		t.Fatalf("unexpected search result: %+v", searched.Items)
	}

	counts, err := svc.CountByStatus()
	if err != nil {
		t.Fatalf("count pages: %v", err)
	}
	if counts[db.PageStatusPublished] != 2 || counts[db.PageStatusDraft] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestPageServiceGetPublishedBySlugHidesDrafts(t *testing.T) {
	svc := NewPageService(setupServiceTestDB(t))

	if _, err := svc.Create(PageInput{Title: "Secret", Slug: "secret"}); err != nil {
		t.Fatalf("create page: %v", err)
	}
	if _, err := svc.GetPublishedBySlug("secret"); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected draft to be hidden, got %v", err)
	}
	if _, err := svc.GetBySlug("secret"); err != nil {
		t.Fatalf("expected editors to read drafts: %v", err)
	}
}

func TestRenderMarkdownSanitizes(t *testing.T) {
	html, err := RenderMarkdown("# Title\n\n<script>alert(1)</script>\n\n| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatalf("render markdown: %v", err)
	}
	if strings.Contains(html, "<script") {
		t.Fatalf("script tag not stripped: %s", html)
	}
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "<table>") {
		t.Fatalf("expected heading and table, got %s", html)
	}
}

func TestSummarizeContentTruncates(t *testing.T) {
	long := strings.Repeat("字", 130)
	summary := summarizeContent(long)
	if []rune(summary)[summaryLimit] != '…' || len([]rune(summary)) != summaryLimit+1 {
		t.Fatalf("unexpected summary length %d", len([]rune(summary)))
	}
}
