// Package filename derives safe local file names from links.
//
// A Target is either a plain URL or an HTML element: anchors contribute
// their href and images their src. Resolve turns a Target into a Link, the
// absolute URL paired with the name the file is saved under. Derivation is
// deterministic; WithRandomSuffix is the only source of randomness and is
// applied by the caller when it wants to avoid name collisions.
package filename
