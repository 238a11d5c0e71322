// Package settings contains the singleton site configuration owned by the
// content store.
package settings

// SocialLinks holds the site's social profile URLs.
type SocialLinks struct {
	Instagram string
	YouTube   string
	TikTok    string
	Pinterest string
}

// AdSlots holds the ad network slot identifiers per page placement.
type AdSlots struct {
	Header       string
	Sidebar      string
	InArticle    string
	BetweenSteps string
	FooterSticky string
}

// Webhooks holds the external automation endpoints. An empty URL means the
// corresponding integration is disabled; callers must check before use.
type Webhooks struct {
	Affiliate string
	Social    string
	Meme      string
}

// Banner is an affiliate display banner pinned to a page position.
type Banner struct {
	Position string
	ImageURL string
	LinkURL  string
	AltText  string
}

// SiteSettings is the site-wide configuration record. There is exactly one
// row; saves replace it wholesale (last write wins).
type SiteSettings struct {
	SiteName    string
	Tagline     string
	LogoURL     string
	ContactMail string

	Social   SocialLinks
	Ads      AdSlots
	Webhooks Webhooks

	HeroRecipeIDs             []string
	SpecialCollectionCategory string
	Banners                   []Banner
}

// Public returns a copy safe to serve without authentication. Webhook
// endpoints stay admin-only.
func (s *SiteSettings) Public() SiteSettings {
	out := *s
	out.Webhooks = Webhooks{}
	return out
}

// BannerFor returns the banner for a page position, nil when none is set.
func (s *SiteSettings) BannerFor(position string) *Banner {
	for i := range s.Banners {
		if s.Banners[i].Position == position {
			return &s.Banners[i]
		}
	}
	return nil
}
