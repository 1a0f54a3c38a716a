package controllers

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	database "github.com/phillip/ngo-portal-go/database"
	models "github.com/phillip/ngo-portal-go/models"
	utils "github.com/phillip/ngo-portal-go/utils"
)

type DashboardStats struct {
	Stats                 Totals          `json:"stats"`
	RecentActivity        []Activity      `json:"recentActivity"`
	CampaignProgress      []CampaignGauge `json:"campaignProgress"`
	VolunteerDistribution []AreaCount     `json:"volunteerDistribution"`
	TopCampaigns          []TopCampaign   `json:"topCampaigns"`
}

type Totals struct {
	TotalCampaigns  int     `json:"totalCampaigns"`
	TotalVolunteers int     `json:"totalVolunteers"`
	UpcomingEvents  int     `json:"upcomingEvents"`
	TotalDonations  float64 `json:"totalDonations"`
}

type Activity struct {
	Type    string    `json:"type"`
	Message string    `json:"message"`
	Time    string    `json:"time"`
	At      time.Time `json:"timestamp"`
}

type CampaignGauge struct {
	Name   string  `json:"name"`
	Raised float64 `json:"raised"`
	Goal   float64 `json:"goal"`
}

type AreaCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type TopCampaign struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Raised     float64 `json:"raised"`
	Goal       float64 `json:"goal"`
	Percentage int     `json:"percentage"`
}

const (
	recentDonations  = 3
	recentVolunteers = 2
	progressLimit    = 6
	topLimit         = 4
)

// volunteerAreas are the chart buckets with the value shown when a bucket
// has no volunteers yet.
var volunteerAreas = []struct {
	name        string
	placeholder int
}{
	{"Education", 10},
	{"Healthcare", 8},
	{"Environment", 5},
	{"Community", 7},
}

// ---------------- STATS ----------------
func GetDashboardStats(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := d.context(c)
		defer cancel()

		var (
			campaigns  []models.Campaign
			volunteers []models.Volunteer
			events     []models.Event
			donations  []models.Donation
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			campaigns, err = d.Repos.Campaigns.Find(gctx, database.Query{Sort: inserted})
			return err
		})
		g.Go(func() (err error) {
			volunteers, err = d.Repos.Volunteers.Find(gctx, database.Query{Sort: newestFirst})
			return err
		})
		g.Go(func() (err error) {
			events, err = d.Repos.Events.Find(gctx, database.Query{
				Filter: map[string]any{"status": string(models.EventUpcoming)},
			})
			return err
		})
		g.Go(func() (err error) {
			donations, err = d.Repos.Donations.Find(gctx, database.Query{
				Filter: map[string]any{"status": string(models.DonationCompleted)},
				Sort:   newestFirst,
			})
			return err
		})
		if err := g.Wait(); err != nil {
			respondError(c, err)
			return
		}

		respondOK(c, buildDashboard(campaigns, volunteers, events, donations, time.Now()))
	}
}

// buildDashboard expects volunteers and donations newest first and donations
// already restricted to completed ones.
func buildDashboard(campaigns []models.Campaign, volunteers []models.Volunteer, events []models.Event, donations []models.Donation, now time.Time) DashboardStats {
	out := DashboardStats{
		Stats: Totals{
			TotalCampaigns:  len(campaigns),
			TotalVolunteers: len(volunteers),
			UpcomingEvents:  len(events),
		},
	}
	for _, dn := range donations {
		out.Stats.TotalDonations += dn.Amount
	}

	out.RecentActivity = recentActivity(volunteers, donations, now)

	out.CampaignProgress = make([]CampaignGauge, 0, progressLimit)
	for i, cp := range campaigns {
		if i == progressLimit {
			break
		}
		out.CampaignProgress = append(out.CampaignProgress, CampaignGauge{Name: cp.Title, Raised: cp.RaisedAmount, Goal: cp.GoalAmount})
	}

	out.VolunteerDistribution = distribution(volunteers)

	ranked := append([]models.Campaign(nil), campaigns...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].RaisedAmount > ranked[j].RaisedAmount })
	out.TopCampaigns = make([]TopCampaign, 0, topLimit)
	for i := range ranked {
		if i == topLimit {
			break
		}
		cp := &ranked[i]
		out.TopCampaigns = append(out.TopCampaigns, TopCampaign{
			ID:         cp.ID.Hex(),
			Name:       cp.Title,
			Raised:     cp.RaisedAmount,
			Goal:       cp.GoalAmount,
			Percentage: cp.FundedPercent(),
		})
	}
	return out
}

func recentActivity(volunteers []models.Volunteer, donations []models.Donation, now time.Time) []Activity {
	feed := make([]Activity, 0, recentDonations+recentVolunteers)
	for i := range donations {
		if i == recentDonations {
			break
		}
		dn := &donations[i]
		campaign := dn.Campaign
		if campaign == "" {
			campaign = "general fund"
		}
		feed = append(feed, Activity{
			Type:    "donation",
			Message: fmt.Sprintf("%s donated $%.2f to %s", dn.DonorName(), dn.Amount, campaign),
			At:      dn.CreatedAt,
		})
	}
	for i := range volunteers {
		if i == recentVolunteers {
			break
		}
		v := &volunteers[i]
		area := v.Area
		if area == "" {
			area = "general"
		}
		feed = append(feed, Activity{
			Type:    "volunteer",
			Message: fmt.Sprintf("%s signed up to volunteer in %s", v.Name, area),
			At:      v.CreatedAt,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool { return feed[i].At.After(feed[j].At) })
	for i := range feed {
		feed[i].Time = utils.TimeAgo(feed[i].At, now)
	}
	return feed
}

func distribution(volunteers []models.Volunteer) []AreaCount {
	counts := map[string]int{}
	for _, v := range volunteers {
		area := strings.ToLower(v.Area)
		for _, a := range volunteerAreas {
			if strings.Contains(area, strings.ToLower(a.name)) {
				counts[a.name]++
				break
			}
		}
	}

	out := make([]AreaCount, 0, len(volunteerAreas))
	for _, a := range volunteerAreas {
		n := counts[a.name]
		if n == 0 {
			n = a.placeholder
		}
		out = append(out, AreaCount{Name: a.name, Value: n})
	}
	return out
}
