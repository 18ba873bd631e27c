// Package composite turns exported rain frames into an animated GIF:
// each frame is fitted to a background image, masked by the luminance
// of a mask image, composited over the background together with optional
// text overlays and finally encoded as an infinitely looping GIF.
package composite
