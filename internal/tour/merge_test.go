package tour

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tourapi/internal/platform/tourapi"
)

func TestMerge(t *testing.T) {
	item := tourapi.Item{
		"contentid":   "126508",
		"title":       "경복궁",
		"firstimage":  "list-1.jpg",
		"firstimage2": "list-2.jpg",
		"addr1":       "서울특별시 종로구",
	}

	tests := []struct {
		name   string
		detail tourapi.Item
		want   map[string]string
	}{
		{
			name: "detail wins",
			detail: tourapi.Item{
				"overview":    "palace",
				"homepage":    "https://royal.test",
				"firstimage":  "detail-1.jpg",
				"firstimage2": "detail-2.jpg",
			},
			want: map[string]string{
				"overview": "palace", "homepage": "https://royal.test",
				"firstimage": "detail-1.jpg", "firstimage2": "detail-2.jpg",
			},
		},
		{
			name:   "empty detail falls back",
			detail: tourapi.Item{},
			want: map[string]string{
				"overview": "", "homepage": "",
				"firstimage": "list-1.jpg", "firstimage2": "list-2.jpg",
			},
		},
		{
			name:   "nil detail falls back",
			detail: nil,
			want: map[string]string{
				"overview": "", "homepage": "",
				"firstimage": "list-1.jpg", "firstimage2": "list-2.jpg",
			},
		},
		{
			name:   "empty detail image does not hide list image",
			detail: tourapi.Item{"firstimage": "", "overview": "x"},
			want: map[string]string{
				"overview": "x", "homepage": "",
				"firstimage": "list-1.jpg", "firstimage2": "list-2.jpg",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(item, tt.detail)
			for k, v := range tt.want {
				assert.Equal(t, v, got[k], k)
			}
			assert.Equal(t, "경복궁", got["title"])
			assert.Equal(t, "서울특별시 종로구", got["addr1"])
		})
	}

	_, touched := item["overview"]
	assert.False(t, touched, "merge must not modify its input")
}

func TestMerge_NoImagesAnywhere(t *testing.T) {
	got := Merge(tourapi.Item{"contentid": "1"}, tourapi.Item{})
	assert.Equal(t, "", got["firstimage"])
	assert.Equal(t, "", got["firstimage2"])
}
