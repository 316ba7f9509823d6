package tour

import "tourapi/internal/platform/tourapi"

// Merge enriches a list item with its detail record. detail may be nil or
// empty. The inputs are not modified.
//
// overview and homepage come from detail or default to "". The two image
// fields prefer detail, then the list item, then "". Every other list field
// passes through.
func Merge(item, detail tourapi.Item) tourapi.Item {
	out := item.Clone()
	out["overview"] = detail.String("overview")
	out["homepage"] = detail.String("homepage")
	out["firstimage"] = firstNonEmpty(detail.String("firstimage"), item.String("firstimage"))
	out["firstimage2"] = firstNonEmpty(detail.String("firstimage2"), item.String("firstimage2"))
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
