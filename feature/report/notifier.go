package report

import (
	"fmt"
	"io"

	"steam-ledger/feature/games/models"
	"steam-ledger/feature/sync"
)

// PrintNotifier writes one line per event.
type PrintNotifier struct {
	w io.Writer
}

// NewPrintNotifier creates a notifier writing to w.
func NewPrintNotifier(w io.Writer) *PrintNotifier {
	return &PrintNotifier{w: w}
}

func eventIcon(kind models.EventKind) string {
	switch kind {
	case models.EventReleaseDateUpdated:
		return "🔎"
	case models.EventReleased:
		return "🚀"
	default:
		return "•"
	}
}

// Notify writes events in order.
func (n *PrintNotifier) Notify(events []models.SyncEvent) error {
	for _, e := range events {
		if _, err := fmt.Fprintf(n.w, "%s %s\n", eventIcon(e.Kind), e); err != nil {
			return err
		}
	}
	return nil
}

// Summary writes the counters of a pass.
func (n *PrintNotifier) Summary(res *sync.Result) error {
	c := res.Counters
	_, err := fmt.Fprintf(n.w,
		"Run %s: %d catalog, %d owned, %d/%d details (%d failed), %d playtime, wishlist +%d -%d, %d notes (%d linked)\n",
		res.RunID,
		c.CatalogInserted, c.OwnershipInserted,
		c.DetailsStored, c.DetailCandidates, c.DetailsFailed,
		c.PlaytimeInserted,
		c.WishlistInserted, c.WishlistRemoved,
		c.NotesPulled, c.NotesResolved,
	)
	return err
}
