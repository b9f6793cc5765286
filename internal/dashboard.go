package internal

import (
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// dashboardPage is the read-only channel overview. Channels without a
// resolvable wordcloud are simply not listed.
var dashboardPage = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>tubecloud</title>
<style>
body { font-family: sans-serif; margin: 2rem auto; max-width: 960px; color: #222; }
.channel { border-top: 1px solid #ddd; padding: 1.5rem 0; }
.channel img { max-width: 100%; border: 1px solid #eee; }
.meta { color: #666; font-size: 0.9rem; }
</style>
</head>
<body>
<h1>Channel wordclouds</h1>
<p class="meta">Report: {{.ReportName}} &mdash; {{len .Channels}} channel(s)</p>
{{range .Channels}}
<div class="channel">
  <h2><a href="{{.ChannelURL}}">{{.ChannelName}}</a></h2>
  {{with index .Videos 0}}<p class="meta">Latest video: <a href="{{.URL}}">{{.Title}}</a></p>{{end}}
  <img src="/{{.WordcloudPath}}" alt="wordcloud for {{.ChannelName}}">
</div>
{{end}}
{{if not .Channels}}<p>No wordclouds available yet. Run a collection first.</p>{{end}}
</body>
</html>
`))

// DashboardData is what the overview page renders.
type DashboardData struct {
	ReportName string
	Channels   []*ChannelRecord
}

// NewDashboard builds the read-only dashboard router over the store. It
// serves the latest report as JSON, the wordcloud images, and an HTML
// overview; it never mutates collection state.
func NewDashboard(store *Store, verbose bool) *gin.Engine {
	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.SetHTMLTemplate(dashboardPage)

	router.Static("/wordclouds", filepath.Join(store.DataDir(), "wordclouds"))

	router.GET("/", func(c *gin.Context) {
		report, name, err := store.LatestReport()
		if err != nil {
			c.HTML(http.StatusOK, "dashboard", DashboardData{ReportName: "none"})
			return
		}
		c.HTML(http.StatusOK, "dashboard", DashboardData{
			ReportName: name,
			Channels:   displayableChannels(store, report),
		})
	})

	router.GET("/api/report", func(c *gin.Context) {
		report, name, err := store.LatestReport()
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no report available"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"report": name, "channels": report})
	})

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

// displayableChannels filters the report down to records whose wordcloud
// artifact actually exists on disk.
func displayableChannels(store *Store, report CollectionReport) []*ChannelRecord {
	channels := make([]*ChannelRecord, 0, len(report))
	for _, record := range report {
		if store.ResolveArtifact(record.WordcloudPath) == "" {
			continue
		}
		channels = append(channels, record)
	}
	return channels
}
