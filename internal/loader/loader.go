// Package loader walks one character's asset directory and builds its
// sprite.Body: outfit discovery, dimension probing, the shared render box,
// and every outfit/face/accessory image registration. Loading is the only
// I/O the engine performs; the resulting Body is immutable.
package loader

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/velt/spriteset/internal/config"
	"github.com/velt/spriteset/internal/ctxlog"
	"github.com/velt/spriteset/internal/metadata"
	"github.com/velt/spriteset/internal/pathtree"
	"github.com/velt/spriteset/internal/sprite"
)

const (
	// outfitsDir and facesDir are the fixed second-level directory names of
	// the character tree convention.
	outfitsDir = "outfits"
	facesDir   = "faces"

	// globalAccessoryPrefix marks an accessory folder under outfits/ as
	// applying across all of the pose's outfits.
	globalAccessoryPrefix = "acc_"

	faceSubdir     = "face"
	blushSubdir    = "blush"
	mutationSubdir = "mutations"
)

// Loader builds Body records from character directories.
type Loader struct {
	extensions []string
	voices     metadata.VoiceTable
}

// New creates a Loader from the engine configuration.
func New(cfg *config.Config) *Loader {
	return &Loader{
		extensions: cfg.Extensions,
		voices:     metadata.NewVoiceTable(cfg.Voices),
	}
}

// LoadCharacter builds the Body for the character directory <root>/<character>.
// A structural failure (no outfits, unreadable representative image, invalid
// metadata enum) is fatal for this character; the caller decides whether to
// skip it and continue with others.
func (l *Loader) LoadCharacter(ctx context.Context, root, character string) (*sprite.Body, error) {
	logger := ctxlog.FromContext(ctx).With("character", character)
	charDir := filepath.Join(root, character)

	tree, err := l.scan(charDir)
	if err != nil {
		return nil, err
	}
	if len(tree.Dirs) == 0 {
		return nil, fmt.Errorf("character directory is empty: %s", character)
	}

	meta, err := metadata.Load(filepath.Join(charDir, metadata.FileName))
	if err != nil {
		logger.Warn("Character metadata could not be loaded, initializing without.", "error", err)
	}
	if meta == nil {
		meta = &metadata.Record{}
	}

	voiceName := meta.Voice
	if voiceName == "" {
		voiceName = metadata.DefaultVoice
	}
	voice, err := l.voices.Resolve(voiceName)
	if err != nil {
		return nil, fmt.Errorf("character %q: %w", character, err)
	}

	// Pose geometry first: each pose probes its representative outfit image
	// so the shared render box can be computed before any registration.
	poseNames := tree.DirNames()
	poses := make([]*sprite.Pose, 0, len(poseNames))
	discovered := make(sprite.Set)
	for _, poseName := range poseNames {
		pose, outfits, err := l.createPose(charDir, character, poseName, tree.Child(poseName), meta.Poses)
		if err != nil {
			return nil, err
		}
		poses = append(poses, pose)
		for _, outfit := range outfits {
			discovered[outfit] = struct{}{}
		}
	}

	body := sprite.NewBody(
		character,
		stringOr(meta.NameColor, "#ffffff"),
		floatOr(meta.Scale, 1.0),
		voice,
		defaultOutfit(meta.DefaultOutfit, discovered),
		meta.EyeLine,
		meta.Mutations,
	)
	if meta.DisplayName != "" {
		body.DisplayName = meta.DisplayName
	}
	for _, pose := range poses {
		body.AddPose(pose)
	}
	body.Finalize()

	// Registration pass: outfits and outfit-scoped accessories first, then
	// pose-global accessories (outfit-level registrations win), then faces.
	for _, poseName := range poseNames {
		poseNode := tree.Child(poseName)
		if err := l.registerOutfits(ctx, body, character, poseName, poseNode.Child(outfitsDir)); err != nil {
			return nil, err
		}
		if err := l.registerGlobalAccessories(ctx, body, character, poseName, poseNode.Child(outfitsDir), meta.Poses[poseName]); err != nil {
			return nil, err
		}
		l.registerFaces(ctx, body, character, poseName, poseNode.Child(facesDir))
	}

	logger.Debug("Successfully loaded character.",
		"poses", len(poses), "outfits", len(body.Outfits()), "expressions", len(body.Expressions()))
	return body, nil
}

// scan walks the character directory into a path tree, admitting only files
// whose extension is on the allow-list.
func (l *Loader) scan(charDir string) (*pathtree.Node, error) {
	builder := pathtree.NewBuilder(l.extensions)
	err := filepath.WalkDir(charDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(charDir, p)
		if err != nil {
			return err
		}
		builder.Add(filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan character directory %s: %w", charDir, err)
	}
	return builder.Root(), nil
}

// defaultOutfit picks the default outfit key: the metadata value if set,
// then the conventional names in priority order, then the first discovered
// outfit in sorted order.
func defaultOutfit(fromMeta string, discovered sprite.Set) string {
	if fromMeta != "" {
		return fromMeta
	}
	for _, name := range []string{"uniform", "casual", "nude"} {
		if discovered.Has(name) {
			return name
		}
	}
	keys := make([]string, 0, len(discovered))
	for k := range discovered {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

// handle builds the image handle exposed to the host: a slash-separated path
// relative to the asset root.
func handle(parts ...string) string {
	return path.Join(parts...)
}

// stem returns a file name without its extension.
func stem(file string) string {
	return strings.TrimSuffix(file, path.Ext(file))
}

func stringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func floatOr(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}
