// Package test provides the wired-up environment the facewatch command and
// client tests run against.
//
// A Suite bundles everything one end to end test needs: a temporary SQLite
// database with the recognizer schema migrated in, the HTTP API served over
// httptest, an API client pointed at that server and a scripted encoder in
// place of the dlib recognizer. Tests drive the API through the client or
// seed state directly through the repositories; nothing external is touched.
//
// Example usage:
//
//	func TestExample(t *testing.T) {
//	    suite := test.NewSuite(t)
//	    defer suite.Cleanup()
//
//	    suite.Encoder.SetVector(mocks.Vector(1.0))
//	    // suite.APIClient now talks to a server that sees that descriptor
//	}
package test
