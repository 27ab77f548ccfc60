package dashboard

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/seedbed/trellis/internal/ledger"
	"github.com/seedbed/trellis/internal/reflection"
	"github.com/seedbed/trellis/internal/sprout"
	"github.com/seedbed/trellis/internal/timeline"
)

// registerRoutes sets up all dashboard routes on the Gin router.
func registerRoutes(router *gin.Engine, db *gorm.DB) {
	router.GET("/api/ledger", handleLedger(db))
	router.GET("/api/twigs", handleTwigs(db))
	router.GET("/api/twigs/:id", handleTwigDetail(db))
	router.GET("/api/leaves/:id/timeline", handleLeafTimeline(db))
}

func handleLedger(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		led := ledger.New(db)
		soil, err := led.AvailableSoil()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		sun, err := led.AvailableSun()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		capacity, err := led.SunCapacity()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"soil":         soil,
			"sun":          sun,
			"sun_capacity": capacity,
		})
	}
}

func handleTwigs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		twigs, err := sprout.ListTwigs(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, twigs)
	}
}

func handleTwigDetail(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		sprouts, err := sprout.List(db, sprout.ListFilters{TwigID: id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		entries, err := reflection.ListForTwig(db, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"sprouts":     sprouts,
			"reflections": entries,
		})
	}
}

func handleLeafTimeline(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		sprouts, err := sprout.List(db, sprout.ListFilters{LeafID: id})
		if err != nil {
			if errors.Is(err, sprout.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, timeline.Build(sprouts, nil))
	}
}
