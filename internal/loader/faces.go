package loader

import (
	"context"
	"strings"

	"github.com/velt/spriteset/internal/ctxlog"
	"github.com/velt/spriteset/internal/pathtree"
	"github.com/velt/spriteset/internal/sprite"
)

// registerFaces registers the pose's expression images: the plain face set,
// the blush set, and the per-mutation variants of both. A missing faces
// directory, or any missing subset, is a normal absence.
func (l *Loader) registerFaces(ctx context.Context, body *sprite.Body, character, poseName string, faces *pathtree.Node) {
	if faces == nil {
		return
	}
	logger := ctxlog.FromContext(ctx).With("character", character, "pose", poseName)

	base := sprite.NewQualifier(nil, nil)
	prefix := handle(character, poseName, facesDir)
	registerFaceSet(body, poseName, faces.Child(faceSubdir), handle(prefix, faceSubdir), base, false)
	registerFaceSet(body, poseName, faces.Child(blushSubdir), handle(prefix, blushSubdir), base, true)

	mutations := faces.Child(mutationSubdir)
	if mutations == nil {
		return
	}
	for _, mutation := range mutations.DirNames() {
		qualifier, err := body.MutationQualifier(mutation, nil)
		if err != nil {
			logger.Warn("Skipping mutation faces: mutation is not declared in metadata.",
				"mutation", mutation, "error", err)
			continue
		}
		node := mutations.Child(mutation)
		mutPrefix := handle(prefix, mutationSubdir, mutation)
		registerFaceSet(body, poseName, node.Child(faceSubdir), handle(mutPrefix, faceSubdir), qualifier, false)
		registerFaceSet(body, poseName, node.Child(blushSubdir), handle(mutPrefix, blushSubdir), qualifier, true)
	}
}

// registerFaceSet registers every expression file directly under node, and
// recurses one level into accessory-named sub-folders: a face inside such a
// folder is only visible while the named accessories are active. Folder
// names holding several accessory names are whitespace-separated. Duplicate
// (expression, qualifier, blush) registrations overwrite silently.
func registerFaceSet(body *sprite.Body, poseName string, node *pathtree.Node, prefix string, base sprite.Qualifier, blush bool) {
	if node == nil {
		return
	}
	for _, file := range node.SortedFiles() {
		// AddFace only fails for an unknown pose, which cannot happen here.
		_ = body.AddFace(poseName, stem(file), base, blush, handle(prefix, file))
	}
	for _, dir := range node.DirNames() {
		qualifier := sprite.NewQualifier(base.Outfits(), strings.Fields(dir))
		for _, file := range node.Child(dir).SortedFiles() {
			_ = body.AddFace(poseName, stem(file), qualifier, blush, handle(prefix, dir, file))
		}
	}
}
