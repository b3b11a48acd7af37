package web

import (
	"net/http"

	"github.com/hpungsan/starred/internal/db"
	"github.com/hpungsan/starred/internal/errors"
	"github.com/hpungsan/starred/internal/ops"
)

// historyPageSize caps the number of snapshots shown on the history page.
const historyPageSize = 50

// Handlers contains HTTP route handlers for the preview UI.
type Handlers struct {
	deps     ops.Deps
	renderer *Renderer
}

// HandlePreview handles GET / — render the awesome list as HTML.
func (h *Handlers) HandlePreview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	result, err := ops.RenderDoc(r.Context(), h.deps, ops.RenderInput{
		Username: q.Get("username"),
		Sort:     q.Get("sort"),
		Format:   q.Get("format"),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "preview", PreviewPageData{
		PageData: PageData{
			Title:   "Awesome Stars",
			Version: h.renderer.version,
			Nav:     "preview",
		},
		Username:     result.Username,
		Sort:         q.Get("sort"),
		Format:       q.Get("format"),
		Total:        result.Total,
		RenderedHTML: renderMarkdown(result.Markdown),
	})
}

// HandleHistory handles GET /history — list stored snapshots, newest first.
func (h *Handlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	stored, err := db.RecentSnapshots(h.deps.DB, historyPageSize)
	if err != nil {
		h.renderer.renderError(w, r, errors.NewInternal(err))
		return
	}

	items := make([]HistoryItem, 0, len(stored))
	for _, s := range stored {
		items = append(items, HistoryItem{
			ID:      s.ID,
			TakenAt: s.TakenAt,
			Total:   s.Snapshot.Total(),
		})
	}

	h.renderer.renderPage(w, "history", HistoryPageData{
		PageData: PageData{
			Title:   "Snapshot History",
			Version: h.renderer.version,
			Nav:     "history",
		},
		Items: items,
	})
}
