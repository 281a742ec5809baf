package sprite

import (
	"fmt"
	"strings"
)

// Facing is the horizontal direction a pose is drawn facing. It is a closed
// enumeration; unknown labels in metadata are a load failure.
type Facing int

const (
	FacingLeft Facing = iota
	FacingRight
)

// ParseFacing converts a metadata facing label into a Facing.
func ParseFacing(label string) (Facing, error) {
	switch label {
	case "left":
		return FacingLeft, nil
	case "right":
		return FacingRight, nil
	}
	return FacingLeft, fmt.Errorf("unknown facing direction %q", label)
}

func (f Facing) String() string {
	if f == FacingRight {
		return "right"
	}
	return "left"
}

// GroupSeparator splits an accessory group id from a variant name. A name
// containing exactly one separator belongs to a mutually exclusive group
// identified by the prefix.
const GroupSeparator = "_"

// groupID returns the group an accessory name belongs to, if any.
func groupID(name string) (string, bool) {
	if strings.Count(name, GroupSeparator) != 1 {
		return "", false
	}
	return name[:strings.Index(name, GroupSeparator)], true
}

// Accessory is one selectable accessory image with its draw priority. Lower
// z-orders draw first (further back); negative z-orders draw behind the
// outfit and face.
type Accessory struct {
	Image  string
	ZOrder int
}

// Pose is one discrete stance of a character with its own outfit, face and
// accessory registrations. All registration happens at load time; a Pose is
// read-only once its Body is finalized.
type Pose struct {
	Name    string
	Width   int
	Height  int
	AnchorX int
	AnchorY int
	Facing  Facing

	// OffsetX/OffsetY place the pose on the Body's shared render box;
	// YCenter is the anchor's vertical position normalized to box height.
	// All three are derived in finalize.
	OffsetX int
	OffsetY int
	YCenter float64

	outfits     map[string]string
	faces       map[string]QualifierMap[map[bool]string]
	accessories map[string]QualifierMap[map[bool]Accessory]
}

// NewPose creates a pose with its native image size, anchor point and facing.
func NewPose(name string, width, height, anchorX, anchorY int, facing Facing) *Pose {
	return &Pose{
		Name:        name,
		Width:       width,
		Height:      height,
		AnchorX:     anchorX,
		AnchorY:     anchorY,
		Facing:      facing,
		outfits:     make(map[string]string),
		faces:       make(map[string]QualifierMap[map[bool]string]),
		accessories: make(map[string]QualifierMap[map[bool]Accessory]),
	}
}

// finalize derives the pose placement from the shared render box so that all
// poses of one body align on a common canvas.
func (p *Pose) finalize(halfWidth, height int) {
	p.OffsetX = halfWidth - p.AnchorX
	p.OffsetY = height - p.Height
	p.YCenter = float64(p.AnchorY+p.OffsetY) / float64(height)
}

// OutfitNames returns all outfit keys registered for the pose, unsorted.
func (p *Pose) OutfitNames() []string {
	names := make([]string, 0, len(p.outfits))
	for name := range p.outfits {
		names = append(names, name)
	}
	return names
}

// ExpressionIDs returns all expression ids registered for the pose, unsorted.
func (p *Pose) ExpressionIDs() []string {
	ids := make([]string, 0, len(p.faces))
	for id := range p.faces {
		ids = append(ids, id)
	}
	return ids
}

// HasAccessoryForOutfit reports whether an accessory registration of the
// given name is already scoped to the given outfit. Used to let outfit-level
// accessories win over pose-global ones.
func (p *Pose) HasAccessoryForOutfit(name, outfit string) bool {
	for _, e := range p.accessories[name] {
		if e.qual.RestrictsOutfits() && e.qual.AllowsOutfit(outfit) {
			return true
		}
	}
	return false
}

func (p *Pose) addOutfit(name, image string) {
	p.outfits[name] = image
}

func (p *Pose) addFace(expression string, q Qualifier, blush bool, image string) {
	faces := p.faces[expression]
	if faces == nil {
		faces = make(QualifierMap[map[bool]string])
		p.faces[expression] = faces
	}
	faces.Upsert(q,
		func() map[bool]string { return make(map[bool]string) },
		func(byBlush map[bool]string) map[bool]string {
			byBlush[blush] = image
			return byBlush
		})
}

func (p *Pose) addAccessory(name string, q Qualifier, on bool, image string, zorder int) {
	accs := p.accessories[name]
	if accs == nil {
		accs = make(QualifierMap[map[bool]Accessory])
		p.accessories[name] = accs
	}
	accs.Upsert(q,
		func() map[bool]Accessory { return make(map[bool]Accessory) },
		func(byState map[bool]Accessory) map[bool]Accessory {
			byState[on] = Accessory{Image: image, ZOrder: zorder}
			return byState
		})
}

// SelectOutfitImage looks up the base body image for an outfit key. Outfits
// are keyed directly; no qualifier matching is involved.
func (p *Pose) SelectOutfitImage(outfit string) (string, bool) {
	if outfit == "" {
		return "", false
	}
	image, ok := p.outfits[outfit]
	return image, ok
}

// SelectFaceImage picks the face image for an expression given the current
// outfit and active accessories. The requested blush state is preferred; if
// only the opposite state is registered, that image is returned instead.
func (p *Pose) SelectFaceImage(expression string, blush bool, outfit string, active Set) (string, bool) {
	candidates, ok := p.faces[expression]
	if !ok {
		return "", false
	}
	byBlush, ok := Qualify(candidates, outfit, active)
	if !ok {
		return "", false
	}
	if image, ok := byBlush[blush]; ok {
		return image, true
	}
	if image, ok := byBlush[!blush]; ok {
		return image, true
	}
	return "", false
}

// SelectAccessoryImages resolves every registered accessory against the
// current outfit and active accessory set, collapsing each mutually
// exclusive group to at most one active member: once any group variant is
// active, the bare group-id accessory is dropped from the result.
func (p *Pose) SelectAccessoryImages(outfit string, active Set) map[string]Accessory {
	type selected struct {
		name string
		acc  Accessory
	}
	var picked []selected
	activeGroups := make(Set)

	for name, candidates := range p.accessories {
		if len(candidates) == 0 {
			continue
		}
		byState, ok := Qualify(candidates, outfit, active)
		if !ok {
			continue
		}
		on := active.Has(name)
		if on {
			if group, ok := groupID(name); ok {
				activeGroups[group] = struct{}{}
			}
		}
		if acc, ok := byState[on]; ok {
			picked = append(picked, selected{name: name, acc: acc})
		}
	}

	result := make(map[string]Accessory, len(picked))
	for _, s := range picked {
		if activeGroups.Has(s.name) {
			continue
		}
		result[s.name] = s.acc
	}
	return result
}
