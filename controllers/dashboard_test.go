package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "github.com/phillip/ngo-portal-go/models"
)

func TestDashboardPlaceholdersWhenEmpty(t *testing.T) {
	d, _, _ := testDeps()
	e := gin.New()
	e.GET("/dashboard/stats", GetDashboardStats(d))

	w := serve(e, jsonRequest(http.MethodGet, "/dashboard/stats", ""))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := data[DashboardStats](t, w)

	assert.Equal(t, Totals{}, got.Stats)
	assert.Empty(t, got.RecentActivity)
	assert.Equal(t, []AreaCount{
		{Name: "Education", Value: 10},
		{Name: "Healthcare", Value: 8},
		{Name: "Environment", Value: 5},
		{Name: "Community", Value: 7},
	}, got.VolunteerDistribution)
}

func TestDashboardAggregates(t *testing.T) {
	d, set, _ := testDeps()
	base := time.Now().UTC().Truncate(time.Millisecond)

	for i, c := range []struct {
		title        string
		raised, goal float64
	}{
		{"A", 100, 1000}, {"B", 900, 600}, {"C", 50, 0}, {"D", 400, 800},
		{"E", 10, 100}, {"F", 700, 1000}, {"G", 5, 10},
	} {
		cp := models.NewCampaign()
		cp.Title, cp.RaisedAmount, cp.GoalAmount = c.title, c.raised, c.goal
		cp.Touch(base.Add(time.Duration(i) * time.Minute))
		set.Campaigns.Seed(&cp)
	}

	for i, area := range []string{"education", "Education & mentoring", "healthcare"} {
		v := models.NewVolunteer()
		v.Name, v.Area = "Volunteer", area
		v.Touch(base.Add(-time.Duration(i+1) * time.Hour))
		set.Volunteers.Seed(&v)
	}

	upcoming := models.NewEvent()
	done := models.NewEvent()
	done.Status = models.EventCompleted
	set.Events.Seed(&upcoming, &done)

	for i, dn := range []struct {
		amount float64
		status models.DonationStatus
	}{
		{25, models.DonationCompleted}, {75, models.DonationCompleted},
		{1000, models.DonationPending}, {10, models.DonationCompleted}, {5, models.DonationCompleted},
	} {
		don := models.NewDonation()
		don.FirstName, don.Amount, don.Status = "Donor", dn.amount, dn.status
		don.Touch(base.Add(-time.Duration(i*10) * time.Minute))
		set.Donations.Seed(&don)
	}

	e := gin.New()
	e.GET("/dashboard/stats", GetDashboardStats(d))
	w := serve(e, jsonRequest(http.MethodGet, "/dashboard/stats", ""))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := data[DashboardStats](t, w)

	assert.Equal(t, Totals{TotalCampaigns: 7, TotalVolunteers: 3, UpcomingEvents: 1, TotalDonations: 115}, got.Stats)

	require.Len(t, got.RecentActivity, 5)
	types := []string{}
	for i, a := range got.RecentActivity {
		types = append(types, a.Type)
		assert.NotEmpty(t, a.Time)
		if i > 0 {
			assert.False(t, a.At.After(got.RecentActivity[i-1].At))
		}
	}
	assert.Equal(t, []string{"donation", "donation", "donation", "volunteer", "volunteer"}, types)

	assert.Len(t, got.CampaignProgress, 6)
	assert.Equal(t, "A", got.CampaignProgress[0].Name)

	require.Len(t, got.TopCampaigns, 4)
	assert.Equal(t, "B", got.TopCampaigns[0].Name)
	assert.Equal(t, 100, got.TopCampaigns[0].Percentage)
	assert.Equal(t, "F", got.TopCampaigns[1].Name)
	assert.Equal(t, 70, got.TopCampaigns[1].Percentage)
	assert.Equal(t, "D", got.TopCampaigns[2].Name)
	assert.Equal(t, 50, got.TopCampaigns[2].Percentage)

	assert.Equal(t, []AreaCount{
		{Name: "Education", Value: 2},
		{Name: "Healthcare", Value: 1},
		{Name: "Environment", Value: 5},
		{Name: "Community", Value: 7},
	}, got.VolunteerDistribution)
}

func TestDashboardZeroGoal(t *testing.T) {
	cp := models.NewCampaign()
	cp.Title, cp.RaisedAmount = "No goal", 300
	out := buildDashboard([]models.Campaign{cp}, nil, nil, nil, time.Now())

	require.Len(t, out.TopCampaigns, 1)
	assert.Equal(t, 0, out.TopCampaigns[0].Percentage)
}
