package course

import "tourapi/internal/platform/tourapi"

// placeDetailFields are copied from a place's detail record; a field the
// detail lacks is emitted as null.
var placeDetailFields = []string{"mapx", "mapy", "tel", "homepage", "firstimage", "addr1", "addr2"}

// MergePlace overlays the detail fields of a place on its raw course row.
func MergePlace(place, detail tourapi.Item) tourapi.Item {
	out := place.Clone()
	for _, k := range placeDetailFields {
		if v, ok := detail[k]; ok && v != nil {
			out[k] = v
		} else {
			out[k] = nil
		}
	}
	return out
}
