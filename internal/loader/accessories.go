package loader

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/velt/spriteset/internal/ctxlog"
	"github.com/velt/spriteset/internal/metadata"
	"github.com/velt/spriteset/internal/pathtree"
	"github.com/velt/spriteset/internal/sprite"
)

// registerOutfits registers the pose's outfit images and any accessories
// scoped to a single outfit (folders nested inside an accessorized outfit).
func (l *Loader) registerOutfits(ctx context.Context, body *sprite.Body, character, poseName string, outfits *pathtree.Node) error {
	logger := ctxlog.FromContext(ctx).With("character", character, "pose", poseName)

	for _, file := range outfits.SortedFiles() {
		if err := body.AddOutfit(poseName, stem(file), handle(character, poseName, outfitsDir, file)); err != nil {
			return err
		}
	}

	for _, dir := range outfits.DirNames() {
		if isGlobalAccessory(dir) {
			continue
		}
		outfitNode := outfits.Child(dir)
		rep, ok := representativeFile(outfitNode)
		if !ok {
			logger.Warn("Outfit folder has no base image, skipping.", "outfit", dir)
			continue
		}
		if err := body.AddOutfit(poseName, dir, handle(character, poseName, outfitsDir, dir, rep)); err != nil {
			return err
		}

		for _, accDir := range outfitNode.DirNames() {
			name, zorder, err := parseZOrderSuffix(accDir)
			if err != nil {
				return fmt.Errorf("accessory folder %q in pose %q of character %q: %w",
					accDir, poseName, character, err)
			}
			qualifier := sprite.QualifierForOutfit(dir)
			prefix := handle(character, poseName, outfitsDir, dir, accDir)
			if err := registerAccessoryFiles(body, poseName, outfitNode.Child(accDir), prefix, name, qualifier, zorder, nil, ""); err != nil {
				return err
			}
		}
	}
	return nil
}

// registerGlobalAccessories registers accessories that apply across all of
// the pose's outfits (folders carrying the global marker directly under
// outfits/). For every compatible outfit the registration is skipped when
// metadata excludes the (accessory, outfit) pair, or when a more specific
// outfit-level accessory of the same name already covers that outfit.
func (l *Loader) registerGlobalAccessories(ctx context.Context, body *sprite.Body, character, poseName string, outfits *pathtree.Node, poseMeta metadata.Pose) error {
	logger := ctxlog.FromContext(ctx).With("character", character, "pose", poseName)
	pose, ok := body.Pose(poseName)
	if !ok {
		return fmt.Errorf("pose %q does not exist for character %q", poseName, character)
	}

	for _, dir := range outfits.DirNames() {
		if !isGlobalAccessory(dir) {
			continue
		}
		name, zorder, err := parseZOrderSuffix(strings.TrimPrefix(dir, globalAccessoryPrefix))
		if err != nil {
			return fmt.Errorf("accessory folder %q in pose %q of character %q: %w",
				dir, poseName, character, err)
		}

		poseOutfits := pose.OutfitNames()
		sort.Strings(poseOutfits)
		for _, outfit := range poseOutfits {
			if poseMeta.Excluded(name, outfit) {
				logger.Info("Skipping excluded accessory.", "accessory", name, "outfit", outfit)
				continue
			}
			if pose.HasAccessoryForOutfit(name, outfit) {
				logger.Info("Skipping pose-global accessory: a more specific outfit accessory exists.",
					"accessory", name, "outfit", outfit)
				continue
			}
			qualifier := sprite.QualifierForOutfit(outfit)
			prefix := handle(character, poseName, outfitsDir, dir)
			if err := registerAccessoryFiles(body, poseName, outfits.Child(dir), prefix, name, qualifier, zorder, &poseMeta, outfit); err != nil {
				return err
			}
		}
	}
	return nil
}

// registerAccessoryFiles registers every file of one accessory folder. Files
// named "on" or "off" are the accessory's toggle states; any other file <x>
// becomes the synthetic always-on accessory "<name>_<x>", sharing the
// parent's toggle semantics and draw priority. When excludes is non-nil,
// synthetic names are also checked against the metadata exclusion list for
// the given outfit.
func registerAccessoryFiles(body *sprite.Body, poseName string, node *pathtree.Node, prefix, name string, qualifier sprite.Qualifier, zorder int, excludes *metadata.Pose, outfit string) error {
	if node == nil {
		return nil
	}
	for _, file := range node.SortedFiles() {
		image := handle(prefix, file)
		switch s := stem(file); s {
		case "on":
			if err := body.AddAccessory(poseName, name, qualifier, true, image, zorder); err != nil {
				return err
			}
		case "off":
			if err := body.AddAccessory(poseName, name, qualifier, false, image, zorder); err != nil {
				return err
			}
		default:
			synthetic := name + sprite.GroupSeparator + s
			if excludes != nil && excludes.Excluded(synthetic, outfit) {
				continue
			}
			if err := body.AddAccessory(poseName, synthetic, qualifier, true, image, zorder); err != nil {
				return err
			}
		}
	}
	return nil
}

// parseZOrderSuffix strips an optional draw-priority suffix from an
// accessory folder name. The grammar is a sign followed by exactly two
// digits ("hat+05", "cloak-12"); a trailing sign-and-digits run of any other
// length is rejected rather than sliced on a best-effort basis. Names
// without such a suffix default to z-order 0.
func parseZOrderSuffix(name string) (string, int, error) {
	j := len(name)
	for j > 0 && name[j-1] >= '0' && name[j-1] <= '9' {
		j--
	}
	if j == len(name) || j == 0 {
		// No trailing digits, or digits only: a plain name.
		return name, 0, nil
	}
	sign := name[j-1]
	if sign != '+' && sign != '-' {
		// Digits not preceded by a sign are part of the name ("mk2").
		return name, 0, nil
	}
	digits := name[j:]
	if len(digits) != 2 {
		return "", 0, fmt.Errorf("invalid z-order suffix on %q: want sign plus exactly two digits", name)
	}
	base := name[:j-1]
	if base == "" {
		return "", 0, fmt.Errorf("invalid accessory name %q: empty name before z-order suffix", name)
	}
	zorder := int(digits[0]-'0')*10 + int(digits[1]-'0')
	if sign == '-' {
		zorder = -zorder
	}
	return base, zorder, nil
}
