package model

import (
	"encoding/json"
	"time"
)

// BBox is an axis-aligned rectangle in frame pixel coordinates.
type BBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Detection is a persisted classification result tied to the uploading user.
// BBox is nil when the detection carries no box; it is never partially set.
// Records are created once by a successful upload and never updated.
type Detection struct {
	ID            int64
	UserID        int64
	ImagePath     string
	TrashType     string
	Confidence    float64
	DetectionDate time.Time
	BBox          *BBox
}

// MarshalJSON renders the persisted-record serialization contract: the bbox
// key is absent entirely unless all four components were set at creation.
func (d Detection) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		ID            int64   `json:"id"`
		ImagePath     string  `json:"image_path"`
		TrashType     string  `json:"trash_type"`
		Confidence    float64 `json:"confidence"`
		DetectionDate string  `json:"detection_date"`
		BBox          *BBox   `json:"bbox,omitempty"`
	}{
		ID:            d.ID,
		ImagePath:     d.ImagePath,
		TrashType:     d.TrashType,
		Confidence:    d.Confidence,
		DetectionDate: d.DetectionDate.Format("2006-01-02 15:04:05"),
		BBox:          d.BBox,
	})
}
