// internal/dashboard/blocks.go
//
// Read-only block catalogue for the editor's section picker.
package dashboard

import (
	"net/http"

	"github.com/yanizio/atelier/internal/block"
)

// blockInfo is the wire shape for one catalogue entry.
type blockInfo struct {
	Type string `json:"type"`
	block.Meta
}

func (h *Handler) listBlocks(w http.ResponseWriter, r *http.Request) {
	types := block.Types()
	out := make([]blockInfo, 0, len(types))
	for _, t := range types {
		e, ok := block.Lookup(t)
		if !ok {
			continue
		}
		out = append(out, blockInfo{Type: t, Meta: e.Meta})
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) listBlockCategories(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, block.Categories())
}
