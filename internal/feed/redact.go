package feed

import "github.com/osse101/Mivy_Go/internal/domain"

// Teaser returns the projection of body shown to viewers without access.
// Text loses its content; media keeps only what is needed to render a placeholder.
func Teaser(body domain.PostBody) domain.PostBody {
	switch b := body.(type) {
	case domain.TextBody:
		return domain.TextBody{}
	case domain.ImageBody:
		return domain.ImageBody{
			Caption:  b.Caption,
			MimeType: b.MimeType,
			Blurhash: b.Blurhash,
		}
	case domain.VideoBody:
		return domain.VideoBody{
			Description:  b.Description,
			ThumbnailURL: b.ThumbnailURL,
		}
	default:
		return nil
	}
}
