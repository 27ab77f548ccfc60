// Package notify builds the weekly garden digest and posts it to chat.
package notify

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/seedbed/trellis/internal/ledger"
	"github.com/seedbed/trellis/internal/models"
	"github.com/seedbed/trellis/internal/reflection"
	"github.com/seedbed/trellis/internal/sprout"
)

// endingSoonWindow is how far ahead the digest looks for sprouts
// approaching their end date.
const endingSoonWindow = 7 * 24 * time.Hour

// Digest summarizes the garden for a weekly chat post.
type Digest struct {
	Gardener    string
	Soil        int
	Sun         int
	SunCapacity int
	ActiveCount int
	EndingSoon  []models.Sprout
	Unreflected []string // twig names without a reflection this week
}

// Gather assembles digest data from the persisted garden.
func Gather(gdb *gorm.DB, gardener string, now time.Time) (*Digest, error) {
	led := ledger.NewWithClock(gdb, func() time.Time { return now })

	soil, err := led.AvailableSoil()
	if err != nil {
		return nil, err
	}
	sun, err := led.AvailableSun()
	if err != nil {
		return nil, err
	}
	capacity, err := led.SunCapacity()
	if err != nil {
		return nil, err
	}

	active, err := sprout.List(gdb, sprout.ListFilters{Status: models.StatusActive})
	if err != nil {
		return nil, err
	}

	d := &Digest{
		Gardener:    gardener,
		Soil:        soil,
		Sun:         sun,
		SunCapacity: capacity,
		ActiveCount: len(active),
	}

	deadline := now.Add(endingSoonWindow)
	for _, s := range active {
		if !s.EndsAt.After(deadline) {
			d.EndingSoon = append(d.EndingSoon, s)
		}
	}

	gate := reflection.NewGateWithClock(gdb, func() time.Time { return now })
	twigs, err := sprout.ListTwigs(gdb)
	if err != nil {
		return nil, err
	}
	for _, tw := range twigs {
		reflected, err := gate.WasReflectedThisWeek(tw.ID)
		if err != nil {
			return nil, err
		}
		if !reflected {
			d.Unreflected = append(d.Unreflected, tw.Name)
		}
	}

	return d, nil
}

// Format renders the digest as a plain-text chat message.
func (d *Digest) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Trellis digest for %s\n", d.Gardener)
	fmt.Fprintf(&b, "Soil: %d | Sun: %d/%d | Active sprouts: %d\n", d.Soil, d.Sun, d.SunCapacity, d.ActiveCount)

	if len(d.EndingSoon) > 0 {
		b.WriteString("\nEnding within a week:\n")
		for _, s := range d.EndingSoon {
			fmt.Fprintf(&b, "  - %s (%s, ends %s)\n", s.Title, s.ID, s.EndsAt.Format("Jan 2"))
		}
	}

	if len(d.Unreflected) > 0 {
		fmt.Fprintf(&b, "\nNot yet reflected on this week: %s\n", strings.Join(d.Unreflected, ", "))
	}

	return b.String()
}
