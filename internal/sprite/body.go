package sprite

import (
	"fmt"
	"sort"
	"strings"
)

// Body holds everything known about one character: presentation attributes,
// the mutation map, and the per-pose image registrations. A Body is built
// once by the loader and is read-only afterwards; reloading a character
// produces a fresh Body rather than mutating the old one in place.
type Body struct {
	Character string
	// DisplayName is the name shown to players; it defaults to the
	// character id when metadata does not set one.
	DisplayName   string
	Color         string
	Scale         float64
	Voice         string
	DefaultOutfit string
	EyeLine       float64

	// Shared render box, valid after Finalize. All poses of the body are
	// placed on this common canvas.
	Width  int
	Height int

	mutations      map[string]Set
	allOutfits     Set
	allAccessories Set
	allExpressions Set

	poses     map[string]*Pose
	poseOrder []string

	finalized bool
}

// NewBody creates an empty body for the given character id. mutations maps a
// mutation name to the outfit keys it applies to.
func NewBody(character, color string, scale float64, voice, defaultOutfit string, eyeLine float64, mutations map[string][]string) *Body {
	b := &Body{
		Character:      character,
		DisplayName:    character,
		Color:          color,
		Scale:          scale,
		Voice:          voice,
		DefaultOutfit:  defaultOutfit,
		EyeLine:        eyeLine,
		mutations:      make(map[string]Set, len(mutations)),
		allOutfits:     make(Set),
		allAccessories: make(Set),
		allExpressions: make(Set),
		poses:          make(map[string]*Pose),
	}
	for name, outfits := range mutations {
		b.mutations[name] = NewSet(outfits...)
	}
	return b
}

// AddPose registers a pose. Pose order is the order of registration.
func (b *Body) AddPose(p *Pose) {
	if _, ok := b.poses[p.Name]; !ok {
		b.poseOrder = append(b.poseOrder, p.Name)
	}
	b.poses[p.Name] = p
}

// Finalize computes the shared render box from all registered poses and
// derives each pose's placement on it. After Finalize the body is complete.
func (b *Body) Finalize() {
	halfWidth, height := 0, 0
	for _, p := range b.poses {
		left := p.AnchorX
		right := p.Width - p.AnchorX
		if left > halfWidth {
			halfWidth = left
		}
		if right > halfWidth {
			halfWidth = right
		}
		if p.Height > height {
			height = p.Height
		}
	}
	b.Width = halfWidth * 2
	b.Height = height
	for _, p := range b.poses {
		p.finalize(halfWidth, height)
	}
	b.finalized = true
}

// Pose returns the named pose.
func (b *Body) Pose(name string) (*Pose, bool) {
	p, ok := b.poses[name]
	return p, ok
}

// Poses returns all poses in registration order.
func (b *Body) Poses() []*Pose {
	out := make([]*Pose, 0, len(b.poseOrder))
	for _, name := range b.poseOrder {
		out = append(out, b.poses[name])
	}
	return out
}

// MutationOutfits returns the outfit keys a mutation applies to.
func (b *Body) MutationOutfits(name string) (Set, bool) {
	s, ok := b.mutations[name]
	return s, ok
}

// MutationQualifier builds a qualifier restricted to the full outfit set of
// the named mutation, optionally combined with accessory names.
func (b *Body) MutationQualifier(mutation string, accessories []string) (Qualifier, error) {
	outfits, ok := b.mutations[mutation]
	if !ok {
		return Qualifier{}, fmt.Errorf("mutation %q is not declared for character %q", mutation, b.Character)
	}
	keys := make([]string, 0, len(outfits))
	for outfit := range outfits {
		keys = append(keys, outfit)
	}
	return NewQualifier(keys, accessories), nil
}

// AddOutfit registers the base body image for an outfit key on a pose.
func (b *Body) AddOutfit(pose, name, image string) error {
	p, ok := b.poses[pose]
	if !ok {
		return fmt.Errorf("pose %q does not exist for character %q", pose, b.Character)
	}
	b.allOutfits[name] = struct{}{}
	p.addOutfit(name, image)
	return nil
}

// AddFace registers a face image for (expression, qualifier, blush) on a
// pose. Duplicate registrations overwrite: last write wins.
func (b *Body) AddFace(pose, expression string, q Qualifier, blush bool, image string) error {
	p, ok := b.poses[pose]
	if !ok {
		return fmt.Errorf("pose %q does not exist for character %q", pose, b.Character)
	}
	b.allExpressions[p.Name+GroupSeparator+expression] = struct{}{}
	for _, acc := range q.Accessories() {
		b.allAccessories[acc] = struct{}{}
	}
	for _, outfit := range q.Outfits() {
		b.allOutfits[outfit] = struct{}{}
	}
	p.addFace(expression, q, blush, image)
	return nil
}

// AddAccessory registers an accessory image for (name, qualifier, on/off) on
// a pose, with its draw priority.
func (b *Body) AddAccessory(pose, name string, q Qualifier, on bool, image string, zorder int) error {
	p, ok := b.poses[pose]
	if !ok {
		return fmt.Errorf("pose %q does not exist for character %q", pose, b.Character)
	}
	b.allAccessories[name] = struct{}{}
	for _, acc := range q.Accessories() {
		b.allAccessories[acc] = struct{}{}
	}
	for _, outfit := range q.Outfits() {
		b.allOutfits[outfit] = struct{}{}
	}
	p.addAccessory(name, q, on, image, zorder)
	return nil
}

// Outfits returns every outfit key seen across the body, sorted.
func (b *Body) Outfits() []string {
	return sortedKeys(b.allOutfits)
}

// Expressions returns every pose-qualified expression id seen across the
// body (for example "a_0"), sorted.
func (b *Body) Expressions() []string {
	return sortedKeys(b.allExpressions)
}

// AccessoryGroups returns the ids of mutually exclusive accessory groups:
// every prefix shared by at least one group-separated accessory name.
func (b *Body) AccessoryGroups() []string {
	groups := make(Set)
	for name := range b.allAccessories {
		if group, ok := groupID(name); ok {
			groups[group] = struct{}{}
		}
	}
	return sortedKeys(groups)
}

// Accessories returns every accessory name that is directly toggleable: all
// names seen across the body minus bare group ids, sorted. Hosts use this to
// build toggle lists.
func (b *Body) Accessories() []string {
	groups := NewSet(b.AccessoryGroups()...)
	names := make([]string, 0, len(b.allAccessories))
	for name := range b.allAccessories {
		if groups.Has(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SplitEmotion splits a compound emotion key ("a_0", "b_3") into its pose
// name and expression id. The pose name itself may contain a separator; at
// most two separators total are accepted.
func (b *Body) SplitEmotion(emotion string) (pose, expression string, err error) {
	if strings.Count(emotion, GroupSeparator) > 2 {
		return "", "", fmt.Errorf("invalid emotion %q for character %q", emotion, b.Character)
	}
	i := strings.LastIndex(emotion, GroupSeparator)
	if i <= 0 || i == len(emotion)-1 {
		return "", "", fmt.Errorf("invalid emotion %q for character %q", emotion, b.Character)
	}
	return emotion[:i], emotion[i+1:], nil
}

func sortedKeys(s Set) []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
