// Package handlers provides HTTP request handling
package handlers

// Common error messages
const (
	ErrMsgInvalidPersonID = "Invalid person id"
	ErrMsgPersonNotFound  = "Person not found"
	ErrMsgInvalidReqBody  = "Invalid request body"
)

// Recognition error messages
const (
	ErrMsgImageRequired   = "Image file is required"
	ErrMsgNoFace          = "No face found in image"
	ErrMsgMultipleFaces   = "More than one face found in image"
	ErrMsgDuplicateFace   = "This face is already registered"
	ErrMsgUnsupportedFile = "Only JPEG images are supported"
)
