package bot

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/facewatch/facewatch/internal/db/repos"
	"github.com/facewatch/facewatch/internal/face"
	"github.com/facewatch/facewatch/internal/media"
	"github.com/facewatch/facewatch/internal/types"
)

func TestFormatRecognition(t *testing.T) {
	tests := []struct {
		name        string
		recognition *types.Recognition
		want        []string
	}{
		{
			name: "new person",
			recognition: &types.Recognition{
				Status:          types.StatusNew,
				PersonID:        4,
				Label:           "person_4",
				AppearanceCount: 1,
			},
			want: []string{"New person", `"person_4"`, "ID 4"},
		},
		{
			name: "recognized person",
			recognition: &types.Recognition{
				Status:          types.StatusRecognized,
				PersonID:        2,
				Label:           "alice",
				AppearanceCount: 7,
				Distance:        0.3456,
			},
			want: []string{"Recognized", `"alice"`, "ID 2", "Seen 7 times", "0.35"},
		},
		{
			name: "ambiguous match",
			recognition: &types.Recognition{
				Status:       types.StatusAmbiguous,
				CandidateIDs: []uint{3, 8},
			},
			want: []string{"Ambiguous", "2 known people", "3, 8", "Nothing was recorded"},
		},
		{
			name:        "unexpected status",
			recognition: &types.Recognition{Status: types.RecognitionStatus(99)},
			want:        []string{msgProcessingFailed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatRecognition(tt.recognition)
			for _, fragment := range tt.want {
				assert.Contains(t, got, fragment)
			}
		})
	}
}

func TestFormatStats(t *testing.T) {
	got := formatStats(&types.StatsResponse{People: 3, Embeddings: 9, Sightings: 27})
	assert.Contains(t, got, "3 people")
	assert.Contains(t, got, "9 stored descriptors")
	assert.Contains(t, got, "27 sightings")
}

func TestDownloadReply(t *testing.T) {
	assert.Equal(t, msgNotJPEGContent, downloadReply(media.ErrUnsupportedFormat))
	assert.Equal(t, msgTooLarge, downloadReply(media.ErrMaxSizeExceeded))
	assert.Equal(t, msgProcessingFailed, downloadReply(fmt.Errorf("connection reset")))

	// Wrapped errors still map to the right reply
	wrapped := fmt.Errorf("fetch image: %w", media.ErrMaxSizeExceeded)
	assert.Equal(t, msgTooLarge, downloadReply(wrapped))
}

func TestRecognitionErrorReply(t *testing.T) {
	assert.Equal(t, msgNoFace, recognitionErrorReply(face.ErrNoFace))
	assert.Equal(t, msgMultipleFaces, recognitionErrorReply(face.ErrMultipleFaces))
	assert.Equal(t, msgDuplicateFace, recognitionErrorReply(repos.ErrDuplicateVector))
	assert.Equal(t, msgProcessingFailed, recognitionErrorReply(fmt.Errorf("db down")))

	wrapped := fmt.Errorf("failed to extract face descriptor: %w", face.ErrNoFace)
	assert.Equal(t, msgNoFace, recognitionErrorReply(wrapped))
}

func TestIsJPEGName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{name: "photo.jpg", want: true},
		{name: "photo.JPG", want: true},
		{name: "photo.jpeg", want: true},
		{name: "archive.tar.jpg", want: true},
		{name: "photo.png", want: false},
		{name: "photo.jpg.png", want: false},
		{name: "photo", want: false},
		{name: "", want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isJPEGName(tt.name), "name %q", tt.name)
	}
}
