package sync

import (
	"context"
	"fmt"
	"time"

	"steam-ledger/core/reconcile"
	"steam-ledger/feature/games/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Step names, in run order.
const (
	StepCatalog   = "catalog"
	StepOwnership = "ownership"
	StepDetails   = "details"
	StepPlaytime  = "playtime"
	StepWishlist  = "wishlist"
	StepNotes     = "notes"
)

// Counters holds per-step counts of one pass.
type Counters struct {
	CatalogInserted   int `json:"catalog_inserted"`
	OwnershipInserted int `json:"ownership_inserted"`
	DetailCandidates  int `json:"detail_candidates"`
	DetailsStored     int `json:"details_stored"`
	DetailsFailed     int `json:"details_failed"`
	PlaytimeInserted  int `json:"playtime_inserted"`
	WishlistRemoved   int `json:"wishlist_removed"`
	WishlistInserted  int `json:"wishlist_inserted"`
	NotesPulled       int `json:"notes_pulled"`
	NotesResolved     int `json:"notes_resolved"`
}

// Result is the outcome of one pass.
type Result struct {
	RunID    string             `json:"run_id"`
	Started  time.Time          `json:"started"`
	Finished time.Time          `json:"finished"`
	Counters Counters           `json:"counters"`
	Events   []models.SyncEvent `json:"events"`
	// FailedStep names the step that aborted the pass, if any.
	FailedStep string `json:"failed_step,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Orchestrator runs a full pass.
type Orchestrator struct {
	library  *Library
	wishlist *Wishlist
	notes    *Notes
	detector *Detector
	logger   *zap.Logger
	now      func() time.Time
}

// NewOrchestrator wires the synchronizers of one account.
func NewOrchestrator(lib LibraryClient, notes NotesClient, store Store, account string, cfg Config, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		library:  NewLibrary(lib, store, account, cfg, logger.Named("library")),
		wishlist: NewWishlist(lib, store, account, cfg, logger.Named("wishlist")),
		notes:    NewNotes(notes, store, cfg, logger.Named("notes")),
		detector: NewDetector(notes, store, cfg, logger.Named("detector")),
		logger:   logger,
		now:      time.Now,
	}
}

// Run executes catalog, ownership, details, playtime, wishlist and notes in that order.
// A failing step stops the pass; the returned result then holds the events gathered
// before it alongside the error.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	res := &Result{RunID: uuid.NewString(), Started: o.now().UTC()}
	log := o.logger.With(zap.String("run_id", res.RunID))
	log.Info("Sync pass started")

	steps := []struct {
		name string
		run  func(context.Context, *Result) error
	}{
		{StepCatalog, o.runCatalog},
		{StepOwnership, o.runOwnership},
		{StepDetails, o.runDetails},
		{StepPlaytime, o.runPlaytime},
		{StepWishlist, o.runWishlist},
		{StepNotes, o.runNotes},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return o.fail(log, res, step.name, err)
		}
		if err := step.run(ctx, res); err != nil {
			return o.fail(log, res, step.name, err)
		}
	}

	res.Finished = o.now().UTC()
	log.Info("Sync pass finished",
		zap.Int("events", len(res.Events)),
		zap.Duration("took", res.Finished.Sub(res.Started)),
	)
	return res, nil
}

func (o *Orchestrator) fail(log *zap.Logger, res *Result, step string, err error) (*Result, error) {
	res.Finished = o.now().UTC()
	res.FailedStep = step
	res.Error = err.Error()
	log.Error("Sync pass aborted", zap.String("step", step), zap.Error(err))
	return res, fmt.Errorf("%s step: %w", step, err)
}

func (o *Orchestrator) runCatalog(ctx context.Context, res *Result) error {
	n, err := o.library.SyncCatalog(ctx)
	res.Counters.CatalogInserted = n
	return err
}

func (o *Orchestrator) runOwnership(ctx context.Context, res *Result) error {
	n, err := o.library.SyncOwnership(ctx)
	res.Counters.OwnershipInserted = n
	return err
}

func (o *Orchestrator) runDetails(ctx context.Context, res *Result) error {
	b, err := o.library.FetchDetails(ctx)
	if err != nil {
		return err
	}
	res.Counters.DetailCandidates = len(b.Candidates)
	res.Counters.DetailsFailed = len(b.Failed)

	events, err := o.detector.Detect(ctx, b.Details)
	if err != nil {
		return err
	}
	res.Events = append(res.Events, events...)

	err = o.library.StoreDetails(ctx, b)
	res.Counters.DetailsStored = b.Stored
	return err
}

func (o *Orchestrator) runPlaytime(ctx context.Context, res *Result) error {
	n, err := o.library.SyncPlaytime(ctx)
	res.Counters.PlaytimeInserted = n
	return err
}

func (o *Orchestrator) runWishlist(ctx context.Context, res *Result) error {
	w, err := o.wishlist.Sync(ctx, reconcile.Options{})
	if err != nil {
		return err
	}
	res.Counters.WishlistRemoved = w.Applied.Removed
	res.Counters.WishlistInserted = w.Applied.Inserted
	return nil
}

func (o *Orchestrator) runNotes(ctx context.Context, res *Result) error {
	n, err := o.notes.PullAndMerge(ctx)
	if n != nil {
		res.Counters.NotesPulled = n.Pulled
		res.Counters.NotesResolved = n.Resolved
	}
	if err != nil {
		return err
	}

	events, err := o.detector.DetectNewlyReleased(ctx)
	if err != nil {
		return err
	}
	res.Events = append(res.Events, events...)
	return nil
}
