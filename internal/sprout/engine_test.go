package sprout

import (
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/seedbed/trellis/internal/ledger"
	"github.com/seedbed/trellis/internal/models"
)

func testGardenDB(t *testing.T, soil int) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = gdb.AutoMigrate(
		&models.Twig{}, &models.Leaf{}, &models.Sprout{},
		&models.Watering{}, &models.LedgerState{},
	)
	if err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	ls := models.LedgerState{
		ID:            models.LedgerRowID,
		SoilAvailable: soil,
		SunAvailable:  3,
		SunCapacity:   3,
		LastSunReset:  time.Now().UTC(),
	}
	if err := gdb.Create(&ls).Error; err != nil {
		t.Fatalf("seed ledger: %v", err)
	}
	return gdb
}

var testNow = time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)

func testEngine(t *testing.T, soil int) (*Engine, *gorm.DB) {
	t.Helper()
	gdb := testGardenDB(t, soil)
	return NewEngineWithClock(gdb, func() time.Time { return testNow }), gdb
}

func graftOpts() GraftOpts {
	return GraftOpts{
		TwigName:    "health",
		LeafName:    "running",
		Title:       "Run three times a week",
		Season:      models.SeasonOneMonth,
		Environment: models.EnvFirm,
	}
}

func TestGraft_CreatesActiveSprout(t *testing.T) {
	e, gdb := testEngine(t, 100)

	s, err := e.Graft(graftOpts())
	if err != nil {
		t.Fatalf("Graft: %v", err)
	}

	if !strings.HasPrefix(s.ID, "spr-") {
		t.Errorf("sprout ID %q missing spr- prefix", s.ID)
	}
	if s.Status != models.StatusActive {
		t.Errorf("Status = %q, want active", s.Status)
	}
	if s.SoilCost != 20 {
		t.Errorf("SoilCost = %d, want 20 (1m firm)", s.SoilCost)
	}
	if s.GraftedFromID != nil {
		t.Errorf("GraftedFromID = %v, want nil for initial planting", *s.GraftedFromID)
	}
	wantEnd := time.Date(2026, time.April, 4, 12, 0, 0, 0, time.UTC)
	if !s.EndsAt.Equal(wantEnd) {
		t.Errorf("EndsAt = %v, want %v", s.EndsAt, wantEnd)
	}

	avail, err := ledger.New(gdb).AvailableSoil()
	if err != nil {
		t.Fatalf("AvailableSoil: %v", err)
	}
	if avail != 80 {
		t.Errorf("AvailableSoil = %d, want 80", avail)
	}
}

func TestGraft_LazyTwigAndLeaf(t *testing.T) {
	e, gdb := testEngine(t, 100)

	if _, err := e.Graft(graftOpts()); err != nil {
		t.Fatalf("Graft: %v", err)
	}

	twig, err := TwigByName(gdb, "health")
	if err != nil {
		t.Fatalf("TwigByName: %v", err)
	}
	if len(twig.Leaves) != 1 || twig.Leaves[0].Name != "running" {
		t.Errorf("twig leaves = %+v, want one leaf named running", twig.Leaves)
	}

	// A second graft onto the same names reuses the records.
	s1, _ := List(gdb, ListFilters{TwigID: twig.ID})
	if err := e.Fail(s1[0].ID); err != nil {
		t.Fatalf("Fail: %v", err)
	}
	if _, err := e.Graft(graftOpts()); err != nil {
		t.Fatalf("second Graft: %v", err)
	}

	var twigCount, leafCount int64
	gdb.Model(&models.Twig{}).Count(&twigCount)
	gdb.Model(&models.Leaf{}).Count(&leafCount)
	if twigCount != 1 || leafCount != 1 {
		t.Errorf("twig/leaf counts = %d/%d, want 1/1", twigCount, leafCount)
	}
}

func TestGraft_EmptyTitle(t *testing.T) {
	e, _ := testEngine(t, 100)

	for _, title := range []string{"", "   ", "\t\n"} {
		opts := graftOpts()
		opts.Title = title
		_, err := e.Graft(opts)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("Graft(title=%q) error = %v, want ValidationError", title, err)
			continue
		}
		if verr.Field != "title" {
			t.Errorf("ValidationError.Field = %q, want title", verr.Field)
		}
	}
}

func TestGraft_InvalidEnums(t *testing.T) {
	e, _ := testEngine(t, 100)

	opts := graftOpts()
	opts.Season = models.Season("2y")
	var verr *ValidationError
	if _, err := e.Graft(opts); !errors.As(err, &verr) {
		t.Errorf("Graft(bad season) error = %v, want ValidationError", err)
	}

	opts = graftOpts()
	opts.Environment = models.Environment("swamp")
	if _, err := e.Graft(opts); !errors.As(err, &verr) {
		t.Errorf("Graft(bad environment) error = %v, want ValidationError", err)
	}
}

func TestGraft_ActiveConflict(t *testing.T) {
	e, _ := testEngine(t, 100)

	if _, err := e.Graft(graftOpts()); err != nil {
		t.Fatalf("first Graft: %v", err)
	}

	_, err := e.Graft(graftOpts())
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("second Graft error = %v, want ValidationError (active sprout on leaf)", err)
	}
}

func TestGraft_InsufficientSoil_NoPartialWrite(t *testing.T) {
	e, gdb := testEngine(t, 10) // 1m firm costs 20

	_, err := e.Graft(graftOpts())
	if !errors.Is(err, ledger.ErrInsufficientSoil) {
		t.Fatalf("Graft error = %v, want ErrInsufficientSoil", err)
	}

	// Nothing committed: no sprout, and the lazily-created twig/leaf
	// rolled back with the transaction.
	var sprouts, twigs int64
	gdb.Model(&models.Sprout{}).Count(&sprouts)
	gdb.Model(&models.Twig{}).Count(&twigs)
	if sprouts != 0 || twigs != 0 {
		t.Errorf("counts after failed graft = %d sprouts, %d twigs; want 0, 0", sprouts, twigs)
	}

	avail, _ := ledger.New(gdb).AvailableSoil()
	if avail != 10 {
		t.Errorf("AvailableSoil = %d, want 10 (unchanged)", avail)
	}
}

func TestGraft_ChainedFromTerminal(t *testing.T) {
	e, gdb := testEngine(t, 100)

	first, err := e.Graft(graftOpts())
	if err != nil {
		t.Fatalf("Graft: %v", err)
	}
	if err := e.Complete(first.ID, 4, "went well"); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	opts := graftOpts()
	opts.Title = "Keep the streak going"
	opts.Season = models.SeasonOneWeek
	opts.Environment = models.EnvFertile
	opts.OriginID = first.ID

	successor, err := e.Graft(opts)
	if err != nil {
		t.Fatalf("chained Graft: %v", err)
	}
	if successor.GraftedFromID == nil || *successor.GraftedFromID != first.ID {
		t.Errorf("GraftedFromID = %v, want %s", successor.GraftedFromID, first.ID)
	}
	if successor.SoilCost != 5 {
		t.Errorf("SoilCost = %d, want 5 (1w fertile)", successor.SoilCost)
	}

	// The origin is never mutated by a graft.
	reloaded, err := Get(gdb, first.ID)
	if err != nil {
		t.Fatalf("Get origin: %v", err)
	}
	if reloaded.Status != models.StatusCompleted {
		t.Errorf("origin status = %q, want completed", reloaded.Status)
	}
	if reloaded.Result == nil || *reloaded.Result != 4 {
		t.Errorf("origin result = %v, want 4", reloaded.Result)
	}

	avail, _ := ledger.New(gdb).AvailableSoil()
	if avail != 75 {
		t.Errorf("AvailableSoil = %d, want 75", avail)
	}
}

func TestGraft_OriginMustBeTerminal(t *testing.T) {
	e, _ := testEngine(t, 100)

	first, err := e.Graft(graftOpts())
	if err != nil {
		t.Fatalf("Graft: %v", err)
	}

	opts := graftOpts()
	opts.LeafName = "stretching" // different leaf, so no active-conflict
	opts.OriginID = first.ID

	_, err = e.Graft(opts)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Graft from active origin error = %v, want ValidationError", err)
	}
	if verr.Field != "origin" {
		t.Errorf("ValidationError.Field = %q, want origin", verr.Field)
	}
}

func TestGraft_OriginUnknown(t *testing.T) {
	e, _ := testEngine(t, 100)

	opts := graftOpts()
	opts.OriginID = "spr-zzzzz"
	_, err := e.Graft(opts)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Graft with unknown origin error = %v, want ValidationError", err)
	}
}

func TestGraft_OriginFromOtherTwig(t *testing.T) {
	e, _ := testEngine(t, 200)

	first, err := e.Graft(graftOpts())
	if err != nil {
		t.Fatalf("Graft: %v", err)
	}
	if err := e.Fail(first.ID); err != nil {
		t.Fatalf("Fail: %v", err)
	}

	opts := graftOpts()
	opts.TwigName = "craft"
	opts.OriginID = first.ID
	_, err = e.Graft(opts)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("cross-twig graft error = %v, want ValidationError", err)
	}
}

func TestGraft_OriginNamesLeaf(t *testing.T) {
	e, gdb := testEngine(t, 200)

	first, err := e.Graft(graftOpts())
	if err != nil {
		t.Fatalf("Graft: %v", err)
	}
	if err := e.Fail(first.ID); err != nil {
		t.Fatalf("Fail: %v", err)
	}

	leaf, err := LeafByName(gdb, "health", "running")
	if err != nil {
		t.Fatalf("LeafByName: %v", err)
	}

	opts := graftOpts()
	opts.OriginID = leaf.ID
	s, err := e.Graft(opts)
	if err != nil {
		t.Fatalf("Graft from leaf origin: %v", err)
	}
	if s.GraftedFromID == nil || *s.GraftedFromID != leaf.ID {
		t.Errorf("GraftedFromID = %v, want %s", s.GraftedFromID, leaf.ID)
	}
}
