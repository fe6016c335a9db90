package catalogcmd

// FeatureGates exposes runtime feature toggles required by catalog command handlers.
type FeatureGates struct {
	SitemapEnabled func() bool
}

func (g FeatureGates) sitemapEnabled() bool {
	if g.SitemapEnabled == nil {
		return true
	}
	return g.SitemapEnabled()
}
