// Package response measures the magnitude response of rendered impulse
// responses.
//
// A flanger is a comb filter whose notches sweep with the modulation. For a
// feed-forward comb with delay D samples the notches sit at
// (2k+1)*fs/(2D); [Response.Notches] locates them in a measured response.
//
// # Usage
//
//	r, err := response.Analyze(ir, 48000)
//	fmt.Println(r.Notches(4, 20))
package response
