package view

import "strings"

// ServiceIconOption describes a selectable icon for service entries.
type ServiceIconOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	SVG   string `json:"svg"`
}

type serviceIconAsset struct {
	Key   string
	SVG   string
	Label string
}

const svgOpen = `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round">`

var (
	serviceIconDefinitions = []serviceIconAsset{
		{Key: "code", Label: "Development", SVG: svgOpen + `<path d="M17.25 6.75 22.5 12l-5.25 5.25m-10.5 0L1.5 12l5.25-5.25m7.5-3-4.5 16.5"/></svg>`},
		{Key: "design", Label: "Design", SVG: svgOpen + `<path d="M9.53 16.122a3 3 0 0 0-5.78 1.128 2.25 2.25 0 0 1-2.4 2.245 4.5 4.5 0 0 0 8.4-2.245c0-.399-.078-.78-.22-1.128Zm0 0a15.998 15.998 0 0 0 3.388-1.62m-5.043-.025a15.994 15.994 0 0 1 1.622-3.395m3.42 3.42a15.995 15.995 0 0 0 4.764-4.648l3.876-5.814a1.151 1.151 0 0 0-1.597-1.597L14.146 6.32a15.996 15.996 0 0 0-4.649 4.763"/></svg>`},
		{Key: "marketing", Label: "Marketing", SVG: svgOpen + `<path d="M10.34 15.84c-.688-.06-1.386-.09-2.09-.09H7.5a4.5 4.5 0 1 1 0-9h.75c.704 0 1.402-.03 2.09-.09m0 9.18c.253.962.584 1.892.985 2.783.247.55.06 1.21-.463 1.511l-.657.38a1.125 1.125 0 0 1-1.536-.41 20.845 20.845 0 0 1-1.44-4.282m3.102.069a18.03 18.03 0 0 1-.59-4.59c0-1.586.205-3.124.59-4.59m0 9.18a23.848 23.848 0 0 1 8.835 2.535M10.34 6.66a23.847 23.847 0 0 0 8.835-2.535m0 0A23.74 23.74 0 0 0 18.795 3m.38 1.125a23.91 23.91 0 0 1 1.014 5.395m-1.014 8.855c-.118.38-.245.754-.38 1.125m.38-1.125a23.91 23.91 0 0 0 1.014-5.395m0-3.46c.495.413.811 1.035.811 1.73 0 .695-.316 1.317-.811 1.73m0-3.46a24.347 24.347 0 0 1 0 3.46"/></svg>`},
		{Key: "cloud", Label: "Cloud", SVG: svgOpen + `<path d="M2.25 15a4.5 4.5 0 0 0 4.5 4.5H18a3.75 3.75 0 0 0 1.332-7.257 3 3 0 0 0-3.758-3.848 5.25 5.25 0 0 0-10.233 2.33A4.502 4.502 0 0 0 2.25 15Z"/></svg>`},
		{Key: "mobile", Label: "Mobile", SVG: svgOpen + `<path d="M10.5 1.5H8.25A2.25 2.25 0 0 0 6 3.75v16.5a2.25 2.25 0 0 0 2.25 2.25h7.5A2.25 2.25 0 0 0 18 20.25V3.75a2.25 2.25 0 0 0-2.25-2.25H13.5m-3 0V3h3V1.5m-3 0h3m-3 18.75h3"/></svg>`},
		{Key: "analytics", Label: "Analytics", SVG: svgOpen + `<path d="M3 13.125C3 12.504 3.504 12 4.125 12h2.25c.621 0 1.125.504 1.125 1.125v6.75C7.5 20.496 6.996 21 6.375 21h-2.25A1.125 1.125 0 0 1 3 19.875v-6.75ZM9.75 8.625c0-.621.504-1.125 1.125-1.125h2.25c.621 0 1.125.504 1.125 1.125v11.25c0 .621-.504 1.125-1.125 1.125h-2.25a1.125 1.125 0 0 1-1.125-1.125V8.625ZM16.5 4.125c0-.621.504-1.125 1.125-1.125h2.25C20.496 3 21 3.504 21 4.125v15.75c0 .621-.504 1.125-1.125 1.125h-2.25a1.125 1.125 0 0 1-1.125-1.125V4.125Z"/></svg>`},
		{Key: "security", Label: "Security", SVG: svgOpen + `<path d="M9 12.75 11.25 15 15 9.75m-3-7.036A11.959 11.959 0 0 1 3.598 6 11.99 11.99 0 0 0 3 9.749c0 5.592 3.824 10.29 9 11.623 5.176-1.332 9-6.03 9-11.622 0-1.31-.21-2.571-.598-3.751h-.152c-3.196 0-6.1-1.248-8.25-3.285Z"/></svg>`},
		{Key: "support", Label: "Support", SVG: svgOpen + `<path d="M20.25 8.511c.884.284 1.5 1.128 1.5 2.097v4.286c0 1.136-.847 2.1-1.98 2.193-.34.027-.68.052-1.02.072v3.091l-3-3c-1.354 0-2.694-.055-4.02-.163a2.115 2.115 0 0 1-.825-.242m9.345-8.334a2.126 2.126 0 0 0-.476-.095 48.64 48.64 0 0 0-8.048 0c-1.131.094-1.976 1.057-1.976 2.192v4.286c0 .837.46 1.58 1.155 1.951m9.345-8.334V6.637c0-1.621-1.152-3.026-2.76-3.235A48.455 48.455 0 0 0 11.25 3c-2.115 0-4.198.137-6.24.402-1.608.209-2.76 1.614-2.76 3.235v6.226c0 1.621 1.152 3.026 2.76 3.235.577.075 1.157.14 1.74.194V21l4.155-4.155"/></svg>`},
	}
	defaultServiceIcon = serviceIconAsset{Key: "default", Label: "Default", SVG: svgOpen + `<path d="M9.813 15.904 9 18.75l-.813-2.846a4.5 4.5 0 0 0-3.09-3.09L2.25 12l2.846-.813a4.5 4.5 0 0 0 3.09-3.09L9 5.25l.813 2.846a4.5 4.5 0 0 0 3.09 3.09L15.75 12l-2.846.813a4.5 4.5 0 0 0-3.09 3.09Z"/></svg>`}
	serviceIconLookup  = func() map[string]serviceIconAsset {
		lookup := make(map[string]serviceIconAsset, len(serviceIconDefinitions)+1)
		for _, icon := range serviceIconDefinitions {
			lookup[icon.Key] = icon
		}
		lookup[defaultServiceIcon.Key] = defaultServiceIcon
		return lookup
	}()
)

// ServiceIconOptions exposes the selectable icon metadata for admin pickers.
func ServiceIconOptions() []ServiceIconOption {
	options := make([]ServiceIconOption, 0, len(serviceIconDefinitions))
	for _, icon := range serviceIconDefinitions {
		options = append(options, ServiceIconOption{Key: icon.Key, Label: icon.Label, SVG: icon.SVG})
	}
	return options
}

// IsKnownServiceIcon reports whether key names a catalog icon, including "default".
func IsKnownServiceIcon(key string) bool {
	_, ok := serviceIconLookup[strings.ToLower(strings.TrimSpace(key))]
	return ok
}

// NormalizeServiceIcon lowercases key and maps empty or unknown keys to "default".
func NormalizeServiceIcon(key string) string {
	trimmed := strings.ToLower(strings.TrimSpace(key))
	if _, ok := serviceIconLookup[trimmed]; !ok {
		return defaultServiceIcon.Key
	}
	return trimmed
}

// ServiceIconLabel resolves the display label, falling back to the default icon.
func ServiceIconLabel(key string) string {
	return serviceIconLookup[NormalizeServiceIcon(key)].Label
}

// ServiceIconSVG resolves the SVG string for a given key, falling back to the default icon.
func ServiceIconSVG(key string) string {
	return serviceIconLookup[NormalizeServiceIcon(key)].SVG
}
