package content

// ContentResponse is the public landing page payload
type ContentResponse struct {
	*SiteContent
	HeroDescriptionHTML string `json:"heroDescriptionHtml"`
	AboutDetailsHTML    string `json:"aboutDetailsHtml"`
}

type BlockedDateResponse struct {
	Date         string   `json:"date"`
	Changed      bool     `json:"changed"`
	BlockedDates []string `json:"blockedDates"`
}

func toContentResponse(c *SiteContent) *ContentResponse {
	return &ContentResponse{
		SiteContent:         c,
		HeroDescriptionHTML: renderMarkdown(c.HeroDescription),
		AboutDetailsHTML:    renderMarkdown(c.AboutDetails),
	}
}
