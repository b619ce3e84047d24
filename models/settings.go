package models

import "time"

const (
	DefaultJpegQuality  = 80
	DefaultThumbQuality = 60
)

// GlobalSettings is the deployment-wide singleton owned by the single implicit
// operator. Its branding fields are the last-resort fallback when an event's
// template leaves a slot empty, and its quality knobs drive the compositor's
// JPEG encoders.
type GlobalSettings struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BrandName    *string `json:"brand_name,omitempty"`
	BrandLogoURL *string `json:"brand_logo_url,omitempty"`

	FrameURL             *string `json:"frame_url,omitempty"`
	WatermarkURL         *string `json:"watermark_url,omitempty"`
	FramePortraitURL     *string `json:"frame_portrait_url,omitempty"`
	WatermarkPortraitURL *string `json:"watermark_portrait_url,omitempty"`

	JpegQuality  int `gorm:"default:80" json:"jpeg_quality"`
	ThumbQuality int `gorm:"default:60" json:"thumb_quality"`

	UpdatedAt time.Time `json:"updated_at"`
}

func (GlobalSettings) TableName() string {
	return "global_settings"
}
