package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/phillip/ngo-portal-go/apperrors"
)

// GetCampaignBySlug serves the public campaign page lookup.
func GetCampaignBySlug(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))
		if slug == "" {
			respondError(c, apperrors.Validation("slug", "slug is required"))
			return
		}
		ctx, cancel := d.context(c)
		defer cancel()

		campaign, err := d.Repos.Campaigns.FindOne(ctx, "slug", slug)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, campaign)
	}
}
