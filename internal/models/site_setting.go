// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// SiteSettings is a convenience map of branding/theming key-value pairs
// (site name, logo URL, theme preset, footer text, ...).
type SiteSettings map[string]string

// Well-known site setting keys.
const (
	SettingSiteName    = "site_name"
	SettingLogoURL     = "logo_url"
	SettingThemePreset = "theme_preset"
	SettingFooterText  = "footer_text"
)
