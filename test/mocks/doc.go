// Package mocks provides test stand-ins for the external components of
// facewatch, currently the dlib face encoder.
//
// The encoder mock satisfies the same interface as the real component and is
// scripted through setters, so a test decides which descriptor a probe image
// produces without touching dlib or real image files:
//
//	encoder := mocks.NewMockEncoder()
//	encoder.SetVector(mocks.Vector(1.0))
//	// every Encode call now yields that descriptor
package mocks
