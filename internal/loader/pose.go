package loader

import (
	"fmt"
	"path/filepath"

	"github.com/velt/spriteset/internal/imagemeta"
	"github.com/velt/spriteset/internal/metadata"
	"github.com/velt/spriteset/internal/pathtree"
	"github.com/velt/spriteset/internal/sprite"
)

// outfitEntry is one discovered outfit for a pose: the outfit key plus the
// path (relative to the pose's outfits directory) of its representative
// image.
type outfitEntry struct {
	key string
	rel string
}

// discoverOutfits collects the pose's outfit ids: direct image files under
// outfits/, plus one representative image per outfit sub-folder. Folders
// carrying the pose-global accessory marker are accessories, not outfits.
func discoverOutfits(outfits *pathtree.Node) []outfitEntry {
	var entries []outfitEntry
	for _, file := range outfits.SortedFiles() {
		entries = append(entries, outfitEntry{key: stem(file), rel: file})
	}
	for _, dir := range outfits.DirNames() {
		if isGlobalAccessory(dir) {
			continue
		}
		rep, ok := representativeFile(outfits.Child(dir))
		if !ok {
			continue
		}
		entries = append(entries, outfitEntry{key: dir, rel: handle(dir, rep)})
	}
	return entries
}

// representativeFile picks the base image of an accessorized outfit folder:
// the first file, in sorted order, that is not an accessory toggle state.
func representativeFile(dir *pathtree.Node) (string, bool) {
	for _, file := range dir.SortedFiles() {
		if s := stem(file); s != "on" && s != "off" {
			return file, true
		}
	}
	return "", false
}

// createPose probes the pose's representative outfit image, applies metadata
// overrides and builds the Pose record. The returned outfit keys feed
// default-outfit selection.
func (l *Loader) createPose(charDir, character, poseName string, poseNode *pathtree.Node, posesMeta map[string]metadata.Pose) (*sprite.Pose, []string, error) {
	outfitsNode := poseNode.Child(outfitsDir)
	if outfitsNode == nil {
		return nil, nil, fmt.Errorf("the outfits directory of %q does not exist or contains no valid outfits", character)
	}
	entries := discoverOutfits(outfitsNode)
	if len(entries) == 0 {
		return nil, nil, fmt.Errorf("the outfits directory of %q does not exist or contains no valid outfits", character)
	}

	rep := entries[0]
	size, err := imagemeta.Probe(filepath.Join(charDir, poseName, outfitsDir, filepath.FromSlash(rep.rel)))
	if err != nil {
		return nil, nil, fmt.Errorf("unreadable image %q for character %q in pose %q: %w",
			rep.rel, character, poseName, err)
	}

	width, height := size.Width, size.Height
	facingLabel := "left"
	pm, hasMeta := posesMeta[poseName]
	if hasMeta {
		if pm.ImageWidth > 0 {
			width = pm.ImageWidth
		}
		if pm.ImageHeight > 0 {
			height = pm.ImageHeight
		}
		if pm.Facing != "" {
			facingLabel = pm.Facing
		}
	}
	anchorX, anchorY := width/2, height/2
	if hasMeta {
		if pm.CenterWidth > 0 {
			anchorX = pm.CenterWidth
		}
		if pm.CenterHeight > 0 {
			anchorY = pm.CenterHeight
		}
	}
	facing, err := sprite.ParseFacing(facingLabel)
	if err != nil {
		return nil, nil, fmt.Errorf("pose %q of character %q: %w", poseName, character, err)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.key)
	}
	return sprite.NewPose(poseName, width, height, anchorX, anchorY, facing), keys, nil
}

func isGlobalAccessory(dir string) bool {
	return len(dir) > len(globalAccessoryPrefix) && dir[:len(globalAccessoryPrefix)] == globalAccessoryPrefix
}
