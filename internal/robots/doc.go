// Package robots lists the URLs a site names in its robots.txt.
package robots
