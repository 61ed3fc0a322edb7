// Package rank expands abbreviated counts such as "61.8K" and looks up
// the reach and popularity rank of a site from an Alexa-style data
// endpoint.
package rank
