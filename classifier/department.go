package classifier

import "strings"

// DefaultDepartment owns every category without an explicit mapping.
const DefaultDepartment = "General"

// departments is keyed by normalized category. Image labels and the
// keyword buckets both appear here.
var departments = map[string]string{
	"pothole":        "Roads",
	"garbage":        "Sanitation",
	"wire":           "Electricity",
	"streetlight":    "Electricity",
	"waterlogging":   "Drainage",
	"flood":          "Disaster Management",
	"signal":         "Traffic",
	"signal broken":  "Traffic",
	"infrastructure": "Public Works",
	"environment":    "Sanitation",
	"safety":         "Public Safety",
}

// NormalizeCategory lowercases, trims and collapses inner whitespace. Every
// category lookup or comparison goes through it.
func NormalizeCategory(category string) string {
	return strings.Join(strings.Fields(strings.ToLower(category)), " ")
}

// ResolveDepartment maps a category to the department responsible for it.
func ResolveDepartment(category string) string {
	if dept, ok := departments[NormalizeCategory(category)]; ok {
		return dept
	}
	return DefaultDepartment
}
