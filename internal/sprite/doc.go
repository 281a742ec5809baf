// Package sprite holds the character sprite data model and its render-time
// resolution algorithms: the Body/Pose/Qualifier records built by the loader,
// specificity-scored qualifier matching, mutually-exclusive accessory group
// resolution, and the composer that turns an (outfit, accessories,
// expression) state into an ordered draw plan.
//
// The model is built once per character at load time and is read-only
// afterwards, so resolution is a pure function of its inputs and safe to call
// from multiple call sites concurrently.
package sprite
