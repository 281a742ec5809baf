package sprite

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// annBody builds the reference character used across the composer tests:
// one pose "a" with outfits casual/formal, neutral and happy faces, and a
// pose-global "glasses" accessory (z-order 5) with on/off images.
func annBody(t *testing.T) *Body {
	t.Helper()
	b := NewBody("ann", "#ffffff", 1.0, "c5", "casual", 0.5, nil)
	b.AddPose(NewPose("a", 832, 1248, 416, 624, FacingLeft))
	b.Finalize()

	require.NoError(t, b.AddOutfit("a", "casual", "a/outfits/casual.png"))
	require.NoError(t, b.AddOutfit("a", "formal", "a/outfits/formal.png"))

	q := NewQualifier(nil, nil)
	require.NoError(t, b.AddFace("a", "0", q, false, "a/faces/face/0.png"))
	require.NoError(t, b.AddFace("a", "1", q, false, "a/faces/face/1.png"))

	for _, outfit := range []string{"casual", "formal"} {
		oq := QualifierForOutfit(outfit)
		require.NoError(t, b.AddAccessory("a", "glasses", oq, true, "a/outfits/acc_glasses/on.png", 5))
		require.NoError(t, b.AddAccessory("a", "glasses", oq, false, "a/outfits/acc_glasses/off.png", 5))
	}
	return b
}

func TestResolveEndToEnd(t *testing.T) {
	b := annBody(t)

	plan, err := b.Resolve(State{
		Pose:        "a",
		Expression:  "1",
		Blush:       false,
		Outfit:      "formal",
		Accessories: NewSet("glasses"),
	}, true)
	require.NoError(t, err)

	want := []string{
		"a/outfits/formal.png",
		"a/faces/face/1.png",
		"a/outfits/acc_glasses/on.png",
	}
	if diff := cmp.Diff(want, plan.Images); diff != "" {
		t.Fatalf("draw order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 0, plan.OffsetX)
	assert.Equal(t, 0, plan.OffsetY)
	assert.InDelta(t, 0.5, plan.YCenter, 1e-9)
}

func TestResolveZOrderPartition(t *testing.T) {
	b := NewBody("ann", "#ffffff", 1.0, "c5", "casual", 0.0, nil)
	b.AddPose(NewPose("a", 832, 1248, 416, 624, FacingLeft))
	b.Finalize()
	require.NoError(t, b.AddOutfit("a", "casual", "outfit.png"))
	require.NoError(t, b.AddFace("a", "0", NewQualifier(nil, nil), false, "face.png"))

	q := NewQualifier(nil, nil)
	for name, z := range map[string]int{"cloak": -5, "scarf": 0, "hat": 3, "tail": -1} {
		require.NoError(t, b.AddAccessory("a", name, q, true, name+".png", z))
	}

	plan, err := b.Resolve(State{
		Pose:        "a",
		Expression:  "0",
		Outfit:      "casual",
		Accessories: NewSet("cloak", "scarf", "hat", "tail"),
	}, true)
	require.NoError(t, err)

	want := []string{
		"cloak.png", "tail.png", // behind, ascending
		"outfit.png", "face.png",
		"scarf.png", "hat.png", // front, ascending
	}
	assert.Equal(t, want, plan.Images)
}

func TestResolveBlushFallback(t *testing.T) {
	b := annBody(t)

	// Expression "1" is registered only with blush=false; requesting
	// blush=true still resolves to the false-blush image.
	plan, err := b.Resolve(State{
		Pose:        "a",
		Expression:  "1",
		Blush:       true,
		Outfit:      "casual",
		Accessories: NewSet(),
	}, true)
	require.NoError(t, err)
	assert.Contains(t, plan.Images, "a/faces/face/1.png")
}

func TestResolveStrictFailures(t *testing.T) {
	b := annBody(t)

	t.Run("unknown outfit", func(t *testing.T) {
		_, err := b.Resolve(State{Pose: "a", Expression: "0", Outfit: "swimsuit"}, true)
		require.Error(t, err)
		assert.ErrorContains(t, err, `outfit "swimsuit"`)
		assert.ErrorContains(t, err, `pose "a"`)
		assert.ErrorContains(t, err, `character "ann"`)
	})

	t.Run("unknown expression", func(t *testing.T) {
		_, err := b.Resolve(State{Pose: "a", Expression: "99", Outfit: "casual"}, true)
		require.Error(t, err)
		assert.ErrorContains(t, err, `face "99"`)
	})

	t.Run("unknown pose", func(t *testing.T) {
		_, err := b.Resolve(State{Pose: "z", Expression: "0", Outfit: "casual"}, true)
		require.Error(t, err)
		assert.ErrorContains(t, err, `pose "z"`)
	})
}

func TestResolveDegraded(t *testing.T) {
	b := annBody(t)

	t.Run("returns partial plan on lookup misses", func(t *testing.T) {
		plan, err := b.Resolve(State{
			Pose:        "a",
			Expression:  "99",
			Outfit:      "swimsuit",
			Accessories: NewSet("glasses"),
		}, false)
		require.NoError(t, err)
		// Neither outfit nor face resolves, and the glasses qualifier
		// rejects the unknown outfit.
		assert.Empty(t, plan.Images)
	})

	t.Run("unknown pose yields an empty plan", func(t *testing.T) {
		plan, err := b.Resolve(State{Pose: "z", Expression: "0", Outfit: "casual"}, false)
		require.NoError(t, err)
		assert.Empty(t, plan.Images)
	})
}

func TestSelectAccessoryImagesGroups(t *testing.T) {
	b := NewBody("ann", "#ffffff", 1.0, "c5", "casual", 0.0, nil)
	b.AddPose(NewPose("a", 832, 1248, 416, 624, FacingLeft))
	b.Finalize()

	q := NewQualifier(nil, nil)
	// Group parent "hat" plus two variants.
	require.NoError(t, b.AddAccessory("a", "hat", q, true, "hat_on.png", 2))
	require.NoError(t, b.AddAccessory("a", "hat", q, false, "hat_off.png", 2))
	require.NoError(t, b.AddAccessory("a", "hat_red", q, true, "hat_red.png", 2))
	require.NoError(t, b.AddAccessory("a", "hat_blue", q, true, "hat_blue.png", 2))

	pose, _ := b.Pose("a")

	t.Run("active child suppresses the bare group parent", func(t *testing.T) {
		got := pose.SelectAccessoryImages("casual", NewSet("hat", "hat_red"))
		assert.NotContains(t, got, "hat")
		assert.Contains(t, got, "hat_red")
	})

	t.Run("parent renders when no child is active", func(t *testing.T) {
		got := pose.SelectAccessoryImages("casual", NewSet("hat"))
		require.Contains(t, got, "hat")
		assert.Equal(t, "hat_on.png", got["hat"].Image)
	})

	t.Run("inactive accessories fall back to their off image", func(t *testing.T) {
		got := pose.SelectAccessoryImages("casual", NewSet())
		require.Contains(t, got, "hat")
		assert.Equal(t, "hat_off.png", got["hat"].Image)
		// Variants without an off image disappear entirely.
		assert.NotContains(t, got, "hat_red")
		assert.NotContains(t, got, "hat_blue")
	})
}

func TestResolveEmotion(t *testing.T) {
	b := annBody(t)

	plan, err := b.ResolveEmotion("a_1", false, "formal", NewSet("glasses"), true)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"a/outfits/formal.png",
		"a/faces/face/1.png",
		"a/outfits/acc_glasses/on.png",
	}, plan.Images)

	_, err = b.ResolveEmotion("nonsense", false, "formal", nil, true)
	assert.Error(t, err)
}

func TestFaceQualifierSelection(t *testing.T) {
	b := NewBody("ann", "#ffffff", 1.0, "c5", "casual", 0.0,
		map[string][]string{"tan": {"swimsuit"}})
	b.AddPose(NewPose("a", 832, 1248, 416, 624, FacingLeft))
	b.Finalize()
	require.NoError(t, b.AddOutfit("a", "casual", "casual.png"))
	require.NoError(t, b.AddOutfit("a", "swimsuit", "swimsuit.png"))

	base := NewQualifier(nil, nil)
	require.NoError(t, b.AddFace("a", "0", base, false, "face_plain.png"))
	require.NoError(t, b.AddFace("a", "0", NewQualifier(nil, []string{"glasses"}), false, "face_glasses.png"))
	tan, err := b.MutationQualifier("tan", nil)
	require.NoError(t, err)
	require.NoError(t, b.AddFace("a", "0", tan, false, "face_tan.png"))

	pose, _ := b.Pose("a")

	t.Run("accessory-qualified face wins while the accessory is active", func(t *testing.T) {
		got, ok := pose.SelectFaceImage("0", false, "casual", NewSet("glasses"))
		require.True(t, ok)
		assert.Equal(t, "face_glasses.png", got)
	})

	t.Run("mutation face wins for outfits in the mutation set", func(t *testing.T) {
		got, ok := pose.SelectFaceImage("0", false, "swimsuit", NewSet())
		require.True(t, ok)
		assert.Equal(t, "face_tan.png", got)
	})

	t.Run("plain face otherwise", func(t *testing.T) {
		got, ok := pose.SelectFaceImage("0", false, "casual", NewSet())
		require.True(t, ok)
		assert.Equal(t, "face_plain.png", got)
	})
}
