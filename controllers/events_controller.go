package controllers

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	database "github.com/phillip/ngo-portal-go/database"
	dto "github.com/phillip/ngo-portal-go/dto"
	metrics "github.com/phillip/ngo-portal-go/metrics"
	middleware "github.com/phillip/ngo-portal-go/middleware"
	models "github.com/phillip/ngo-portal-go/models"
)

// ---------------- REGISTER ----------------
// RegisterForEvent stores a sign-up and then bumps the event's registered
// counter. The two writes are not atomic: when the increment fails the
// registration stays and the request still succeeds.
func RegisterForEvent(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in dto.EventRegistrationInput
		if _, err := bindInput(c, &in); err != nil {
			respondError(c, err)
			return
		}
		if err := in.Validate(dto.Create, nil); err != nil {
			respondError(c, err)
			return
		}

		ctx, cancel := d.context(c)
		defer cancel()

		var reg models.EventRegistration
		if err := in.Apply(&reg, nil); err != nil {
			respondError(c, err)
			return
		}
		if _, err := d.Repos.Events.FindByID(ctx, reg.EventID); err != nil {
			respondError(c, err)
			return
		}

		reg.SetID(primitive.NewObjectID())
		reg.Touch(now())
		if err := d.Repos.EventRegistrations.Insert(ctx, &reg); err != nil {
			respondError(c, err)
			return
		}

		if err := d.Repos.Events.Increment(ctx, reg.EventID, "registered", 1); err != nil {
			metrics.RegistrationIncrementFailures.Inc()
			log.Printf("[%s] registration %s stored but event %s counter not updated: %v",
				c.GetString(middleware.RequestIDKey), reg.ID.Hex(), reg.EventID.Hex(), err)
		}

		respondCreated(c, reg)
	}
}

// ---------------- REGISTRATIONS ----------------
func ListEventRegistrations(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := dto.ParseID(c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		ctx, cancel := d.context(c)
		defer cancel()

		if _, err := d.Repos.Events.FindByID(ctx, id); err != nil {
			respondError(c, err)
			return
		}
		regs, err := d.Repos.EventRegistrations.Find(ctx, database.Query{
			Filter: map[string]any{"eventId": id},
			Sort:   []database.SortKey{database.Desc("createdAt")},
		})
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, regs)
	}
}
