package domain

import "strings"

// Canonical feature identifiers. The vocabulary is fixed but extensible;
// everything past the normalization boundary uses these forms only.
const (
	FeatureWindshieldCover = "windshield_cover"
	FeatureLegalCover      = "legal_cover"
	FeatureCourtesyCar     = "courtesy_car"
	FeatureBreakdownCover  = "breakdown_cover"
	FeatureEuropeanCover   = "european_cover"
)

// NormalizeFeature canonicalizes a raw feature name coming back from the
// quote API: lowercase, trimmed, with any trailing "_included" suffix
// stripped (e.g. "Legal_Cover_Included" -> "legal_cover"). Idempotent.
func NormalizeFeature(raw string) string {
	f := strings.ToLower(strings.TrimSpace(raw))
	for strings.HasSuffix(f, "_included") {
		f = strings.TrimSuffix(f, "_included")
	}
	return f
}
