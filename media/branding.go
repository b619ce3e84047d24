package media

import "github.com/eventpix/backend/models"

// Branding holds the resolved asset references for one photo. Either field may
// be empty; references are local paths under the public directory or fully
// qualified URLs.
type Branding struct {
	FrameRef     string
	WatermarkRef string
}

// ResolveBranding picks the effective frame and watermark references for an
// orientation, independently per slot: the event template's
// orientation-specific field wins, then the global orientation-specific field,
// then the template's landscape field, then the global landscape field.
// Landscape photos only consult the landscape fields. The resolver performs no
// I/O; fetching bytes is the caller's job.
func ResolveBranding(tpl *models.BrandingTemplate, settings *models.GlobalSettings, portrait bool) Branding {
	var tplFrame, tplWatermark, tplFramePortrait, tplWatermarkPortrait *string
	if tpl != nil {
		tplFrame = tpl.FrameURL
		tplWatermark = tpl.WatermarkURL
		tplFramePortrait = tpl.FramePortraitURL
		tplWatermarkPortrait = tpl.WatermarkPortraitURL
	}

	var gsFrame, gsWatermark, gsFramePortrait, gsWatermarkPortrait *string
	if settings != nil {
		gsFrame = settings.FrameURL
		gsWatermark = settings.WatermarkURL
		gsFramePortrait = settings.FramePortraitURL
		gsWatermarkPortrait = settings.WatermarkPortraitURL
	}

	if portrait {
		return Branding{
			FrameRef:     firstNonEmpty(tplFramePortrait, gsFramePortrait, tplFrame, gsFrame),
			WatermarkRef: firstNonEmpty(tplWatermarkPortrait, gsWatermarkPortrait, tplWatermark, gsWatermark),
		}
	}
	return Branding{
		FrameRef:     firstNonEmpty(tplFrame, gsFrame),
		WatermarkRef: firstNonEmpty(tplWatermark, gsWatermark),
	}
}

func firstNonEmpty(refs ...*string) string {
	for _, ref := range refs {
		if ref != nil && *ref != "" {
			return *ref
		}
	}
	return ""
}
