package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sitecms/internal/config"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/logger"
	"github.com/sitecms/internal/service"
	"gorm.io/gorm"
)

// 演示数据生成器
func main() {
	cfg := config.Load()
	log := logger.Init(cfg.Env)

	// 初始化数据库
	if err := db.Init(cfg.Database); err != nil {
		log.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	fmt.Println("开始生成演示数据...")
	summary, err := seed(db.DB)
	if err != nil {
		log.Error("failed to seed demo data", "error", err)
		os.Exit(1)
	}

	fmt.Println("演示数据生成完成！")
	fmt.Printf("区块: %d, 服务: %d, 团队: %d, 作品: %d, 页面: %d, 设置: %d\n",
		summary.sections, summary.services, summary.team, summary.portfolio, summary.pages, summary.settings)
}

type seedSummary struct {
	sections  int
	services  int
	team      int
	portfolio int
	pages     int
	settings  int
}

// seed 只在对应表为空时写入，重复执行不会产生重复数据
func seed(gdb *gorm.DB) (seedSummary, error) {
	var summary seedSummary

	sections, err := db.EnsureSections(gdb)
	if err != nil {
		return summary, err
	}
	summary.sections = sections

	if summary.services, err = seedServices(service.NewOfferingService(gdb)); err != nil {
		return summary, err
	}
	if summary.team, err = seedTeam(service.NewTeamMemberService(gdb)); err != nil {
		return summary, err
	}
	if summary.portfolio, err = seedPortfolio(service.NewPortfolioService(gdb)); err != nil {
		return summary, err
	}
	if summary.pages, err = seedPages(service.NewPageService(gdb)); err != nil {
		return summary, err
	}
	if summary.settings, err = seedSettings(service.NewSettingService(gdb)); err != nil {
		return summary, err
	}

	about := service.NewAboutService(gdb)
	current, err := about.Get()
	if err != nil {
		return summary, err
	}
	// 未保存过时 Get 返回默认值，ID 为 0
	if current.ID != 0 {
		return summary, nil
	}
	if _, err := about.Save(service.AboutInput{
		Title:       "About Acme Studio",
		Description: "We are a small team building fast, accessible websites for growing companies.",
		Features:    []string{"Design systems", "Performance budgets", "Long-term support"},
		ButtonText:  "Work with us",
		ButtonURL:   "#contact",
	}); err != nil {
		return summary, err
	}
	return summary, nil
}

func seedServices(svc *service.OfferingService) (int, error) {
	if count, err := svc.Count(); err != nil || count > 0 {
		return 0, err
	}

	inputs := []service.OfferingInput{
		{Title: "Web Development", Description: "Marketing sites and web apps built to last.", Icon: "code"},
		{Title: "Product Design", Description: "Interfaces and design systems that scale.", Icon: "design"},
		{Title: "Cloud Hosting", Description: "Managed deployments with monitoring.", Icon: "cloud"},
		{Title: "Analytics", Description: "Dashboards that answer real questions.", Icon: "analytics"},
	}
	for _, input := range inputs {
		if _, err := svc.Create(input); err != nil {
			return 0, err
		}
	}
	return len(inputs), nil
}

func seedTeam(svc *service.TeamMemberService) (int, error) {
	if count, err := svc.Count(); err != nil || count > 0 {
		return 0, err
	}

	inputs := []service.TeamMemberInput{
		{Name: "Ada Park", Role: "Founder", Bio: "Leads strategy and client work."},
		{Name: "Sam Ortiz", Role: "Engineering Lead", Bio: "Keeps the builds green."},
		{Name: "Lin Chen", Role: "Designer", Bio: "Owns the visual language."},
	}
	for _, input := range inputs {
		if _, err := svc.Create(input); err != nil {
			return 0, err
		}
	}
	return len(inputs), nil
}

func seedPortfolio(svc *service.PortfolioService) (int, error) {
	if total, _, err := svc.Count(); err != nil || total > 0 {
		return 0, err
	}

	inputs := []service.PortfolioInput{
		{Title: "Harbor Coffee", Category: "E-commerce", Description: "Online store relaunch.", ProjectURL: "https://example.com/harbor", Featured: true},
		{Title: "Northwind Clinic", Category: "Healthcare", Description: "Appointment booking portal."},
		{Title: "Fieldnotes", Category: "Publishing", Description: "Headless blog with a custom editor."},
	}
	for _, input := range inputs {
		if _, err := svc.Create(input); err != nil {
			return 0, err
		}
	}
	return len(inputs), nil
}

func seedPages(svc *service.PageService) (int, error) {
	inputs := []service.PageInput{
		{Title: "Privacy Policy", Slug: "privacy", Status: db.PageStatusPublished, Content: "# Privacy Policy\n\nWe only collect what we need to answer your enquiry."},
		{Title: "Terms of Service", Slug: "terms", Status: db.PageStatusDraft, Content: "# Terms\n\nDraft terms pending legal review."},
	}

	created := 0
	for _, input := range inputs {
		if _, err := svc.Create(input); err != nil {
			if errors.Is(err, service.ErrPageSlugTaken) {
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}

func seedSettings(svc *service.SettingService) (int, error) {
	if count, err := svc.Count(); err != nil || count > 0 {
		return 0, err
	}

	inputs := []service.SettingInput{
		{Key: db.SettingKeySiteName, Value: "Acme Studio", Category: db.SettingCategoryGeneral},
		{Key: db.SettingKeySiteTagline, Value: "Websites that work", Category: db.SettingCategoryGeneral},
		{Key: db.SettingKeySiteKeywords, Value: "web design, development, hosting", Category: db.SettingCategorySEO},
		{Key: db.SettingKeyContactEmail, Value: "hello@example.com", Category: db.SettingCategoryContact},
		{Key: db.SettingKeyFooterText, Value: "© Acme Studio", Category: db.SettingCategoryFooter},
	}
	items, err := svc.BulkUpsert(inputs)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}
