package docweaver

import (
	"strconv"
	"time"
)

// Recognized settings keys. Keys outside this vocabulary are carried
// through merges untouched; they are inert unless a downstream component
// reads them.
const (
	SettingOutputFormat         = "output_format"
	SettingVerbose              = "verbose"
	SettingHeadless             = "headless"
	SettingDelayBeforeReturn    = "delay_before_return_html" // seconds
	SettingWaitForImages        = "wait_for_images"
	SettingSimulateUser         = "simulate_user"
	SettingOverrideNavigator    = "override_navigator"
	SettingPageTimeout          = "page_timeout" // milliseconds
	SettingMaxDepth             = "max_depth"
	SettingMaxPages             = "max_pages"
	SettingCSSSelector          = "css_selector"
	SettingViewportWidth        = "viewport_width"
	SettingExcludeExternalLinks = "exclude_external_links"
)

// Settings is a single-level map from option name to value. Three layers
// exist per crawl invocation: project defaults, category overrides, and
// per-invocation overrides.
type Settings map[string]any

// DefaultSettings returns the built-in defaults used when a key is absent
// from every configuration layer.
func DefaultSettings() Settings {
	return Settings{
		SettingOutputFormat:         "markdown",
		SettingVerbose:              false,
		SettingHeadless:             true,
		SettingDelayBeforeReturn:    2,
		SettingWaitForImages:        false,
		SettingSimulateUser:         false,
		SettingOverrideNavigator:    false,
		SettingPageTimeout:          60000,
		SettingMaxDepth:             2,
		SettingMaxPages:             50,
		SettingCSSSelector:          "",
		SettingViewportWidth:        1280,
		SettingExcludeExternalLinks: true,
	}
}

// MergeSettings merges layers left-to-right with later layers winning
// key-by-key. The merge is shallow: values are replaced wholesale, never
// merged recursively. Nil layers are legal and contribute nothing.
// The input maps are not modified.
func MergeSettings(layers ...Settings) Settings {
	merged := Settings{}
	for _, layer := range layers {
		for k, v := range layer {
			merged[k] = v
		}
	}
	return merged
}

// ResolveSettings produces the effective settings for one crawl invocation:
// built-in defaults, overridden by project defaults, category overrides,
// and per-invocation overrides, in that order. Missing layers degrade to
// the built-in defaults; resolution never fails.
func ResolveSettings(project, category, invocation Settings) Settings {
	return MergeSettings(DefaultSettings(), project, category, invocation)
}

// Bool returns the boolean value for key, or def when the key is missing
// or holds a value that cannot be read as a boolean.
func (s Settings) Bool(key string, def bool) bool {
	switch v := s[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// Int returns the integer value for key, tolerating the numeric forms YAML
// decoding produces. Returns def when the key is missing or mistyped.
func (s Settings) Int(key string, def int) int {
	switch v := s[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// String returns the string value for key, or def when missing or mistyped.
func (s Settings) String(key, def string) string {
	if v, ok := s[key].(string); ok {
		return v
	}
	return def
}

// FetchOptions carries the per-page knobs the external fetching engine
// understands. Headless mode is a fetcher construction concern, not a
// per-page one, so it is not represented here.
type FetchOptions struct {
	Delay             time.Duration // pause after load before reading HTML
	WaitForImages     bool
	SimulateUser      bool
	OverrideNavigator bool
	Timeout           time.Duration // whole-page deadline
	ViewportWidth     int
}

// FetchOptionsFromSettings maps the recognized settings vocabulary onto
// FetchOptions, falling back to built-in defaults key-by-key.
func FetchOptionsFromSettings(s Settings) FetchOptions {
	return FetchOptions{
		Delay:             time.Duration(s.Int(SettingDelayBeforeReturn, 2)) * time.Second,
		WaitForImages:     s.Bool(SettingWaitForImages, false),
		SimulateUser:      s.Bool(SettingSimulateUser, false),
		OverrideNavigator: s.Bool(SettingOverrideNavigator, false),
		Timeout:           time.Duration(s.Int(SettingPageTimeout, 60000)) * time.Millisecond,
		ViewportWidth:     s.Int(SettingViewportWidth, 1280),
	}
}
