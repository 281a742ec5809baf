// Package registry holds the loaded character records. It replaces the
// original system's ambient global store: the registry is an explicit object
// owned by the caller, loading returns fresh Body records, and reloading a
// character swaps its record wholesale instead of mutating it in place.
package registry

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/velt/spriteset/internal/ctxlog"
	"github.com/velt/spriteset/internal/loader"
	"github.com/velt/spriteset/internal/sprite"
)

// Registry maps character ids to their loaded Body records.
type Registry struct {
	loader *loader.Loader
	bodies map[string]*sprite.Body
}

// New creates an empty registry that loads characters through l.
func New(l *loader.Loader) *Registry {
	return &Registry{
		loader: l,
		bodies: make(map[string]*sprite.Body),
	}
}

// Load loads (or reloads) one character from <root>/<character>. On success
// the fresh Body replaces any previously loaded record for that id; on
// failure the previous record, if any, stays in place.
func (r *Registry) Load(ctx context.Context, root, character string) error {
	body, err := r.loader.LoadCharacter(ctx, root, character)
	if err != nil {
		return err
	}
	r.bodies[character] = body
	return nil
}

// LoadAll loads every character sub-directory under root. A character that
// fails to load is skipped with a logged warning; the rest of the set still
// loads. The returned error covers only an unreadable root.
func (r *Registry) LoadAll(ctx context.Context, root string) error {
	logger := ctxlog.FromContext(ctx)

	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("failed to read asset root %s: %w", root, err)
	}

	loaded := 0
	for _, e := range dirEntries {
		if !e.IsDir() {
			continue
		}
		if err := r.Load(ctx, root, e.Name()); err != nil {
			logger.Warn("Skipping character that failed to load.", "character", e.Name(), "error", err)
			continue
		}
		loaded++
	}
	logger.Info("Character registry loaded.", "characters", loaded)
	return nil
}

// Body returns the record for a character id.
func (r *Registry) Body(character string) (*sprite.Body, bool) {
	body, ok := r.bodies[character]
	return body, ok
}

// Characters returns the loaded character ids, sorted.
func (r *Registry) Characters() []string {
	ids := make([]string, 0, len(r.bodies))
	for id := range r.bodies {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
