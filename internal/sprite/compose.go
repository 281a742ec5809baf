package sprite

import (
	"fmt"
	"sort"
)

// State is one render-time character state to resolve against a body.
type State struct {
	Pose        string
	Expression  string
	Blush       bool
	Outfit      string
	Accessories Set
}

// DrawPlan is the composer's output: image handles in draw order (first
// drawn furthest back) plus the placement the host needs to align the pose
// on the body's shared canvas.
type DrawPlan struct {
	Images  []string
	OffsetX int
	OffsetY int
	YCenter float64
}

// Resolve composes the ordered image list for a state. In strict mode an
// unresolvable pose, outfit or expression is an error naming the missing
// piece; in degraded mode the plan contains whatever parts resolved.
//
// Draw order: accessories with negative z-order (ascending), the outfit
// image, the face image, then accessories with non-negative z-order
// (ascending).
func (b *Body) Resolve(state State, strict bool) (*DrawPlan, error) {
	pose, ok := b.poses[state.Pose]
	if !ok {
		if strict {
			return nil, fmt.Errorf("pose %q does not exist for character %q", state.Pose, b.Character)
		}
		return &DrawPlan{}, nil
	}

	accessories := pose.SelectAccessoryImages(state.Outfit, state.Accessories)
	ordered := make([]Accessory, 0, len(accessories))
	for _, acc := range accessories {
		ordered = append(ordered, acc)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].ZOrder != ordered[j].ZOrder {
			return ordered[i].ZOrder < ordered[j].ZOrder
		}
		return ordered[i].Image < ordered[j].Image
	})

	plan := &DrawPlan{
		OffsetX: pose.OffsetX,
		OffsetY: pose.OffsetY,
		YCenter: pose.YCenter,
	}

	for _, acc := range ordered {
		if acc.ZOrder < 0 {
			plan.Images = append(plan.Images, acc.Image)
		}
	}

	if image, ok := pose.SelectOutfitImage(state.Outfit); ok {
		plan.Images = append(plan.Images, image)
	} else if strict {
		return nil, fmt.Errorf("outfit %q does not exist in pose %q for character %q",
			state.Outfit, state.Pose, b.Character)
	}

	if image, ok := pose.SelectFaceImage(state.Expression, state.Blush, state.Outfit, state.Accessories); ok {
		plan.Images = append(plan.Images, image)
	} else if strict {
		return nil, fmt.Errorf("face %q does not exist in pose %q for character %q",
			state.Expression, state.Pose, b.Character)
	}

	for _, acc := range ordered {
		if acc.ZOrder >= 0 {
			plan.Images = append(plan.Images, acc.Image)
		}
	}

	return plan, nil
}

// ResolveEmotion addresses the composer through a compound emotion key
// ("a_0") instead of separate pose and expression fields.
func (b *Body) ResolveEmotion(emotion string, blush bool, outfit string, accessories Set, strict bool) (*DrawPlan, error) {
	pose, expression, err := b.SplitEmotion(emotion)
	if err != nil {
		return nil, err
	}
	return b.Resolve(State{
		Pose:        pose,
		Expression:  expression,
		Blush:       blush,
		Outfit:      outfit,
		Accessories: accessories,
	}, strict)
}
