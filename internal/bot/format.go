package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/facewatch/facewatch/internal/db/repos"
	"github.com/facewatch/facewatch/internal/face"
	"github.com/facewatch/facewatch/internal/media"
	"github.com/facewatch/facewatch/internal/types"
)

// Reply texts
const (
	msgMenu = "Choose an action:"

	msgHelp = `I keep track of the faces you show me.

Send a photo (or a .jpg file) and I will tell you whether I have seen that person before.

Commands:
/start - show the action menu
/stats - show how many people I know
/help - show this message`

	msgUnknownCommand = "Unknown command. Send /help for the list of commands."
	msgSendPhoto      = "Please send a photo for recognition."
	msgCleared        = "✅ All face data has been cleared."
	msgClearFailed    = "❌ Failed to clear the face data."
	msgUnknownAction  = "❌ Unknown action."

	msgNotJPEGName      = "❌ Please send a file with a .jpg extension."
	msgNotJPEGContent   = "❌ The file is not a valid JPEG image."
	msgTooLarge         = "❌ The image is too large."
	msgNoFace           = "❌ No face found in the image."
	msgMultipleFaces    = "❌ More than one face found in the image. Please send a photo with a single face."
	msgDuplicateFace    = "⚠️ This exact face is already registered."
	msgProcessingFailed = "❌ Something went wrong while processing the image."
)

// formatRecognition renders the recognition outcome as a reply line
func formatRecognition(r *types.Recognition) string {
	switch r.Status {
	case types.StatusNew:
		return fmt.Sprintf("🆕 New person registered as %q (ID %d).", r.Label, r.PersonID)
	case types.StatusRecognized:
		return fmt.Sprintf("✅ Recognized %q (ID %d). Seen %d times, match distance %.2f.",
			r.Label, r.PersonID, r.AppearanceCount, r.Distance)
	case types.StatusAmbiguous:
		return fmt.Sprintf("🤔 Ambiguous match: %d known people look alike (IDs %s). Nothing was recorded.",
			len(r.CandidateIDs), joinIDs(r.CandidateIDs))
	default:
		return msgProcessingFailed
	}
}

// formatStats renders database totals for the /stats command
func formatStats(stats *types.StatsResponse) string {
	return fmt.Sprintf("📊 Tracking %d people with %d stored descriptors across %d sightings.",
		stats.People, stats.Embeddings, stats.Sightings)
}

// downloadReply maps a download failure to a user-facing reply
func downloadReply(err error) string {
	switch {
	case errors.Is(err, media.ErrUnsupportedFormat):
		return msgNotJPEGContent
	case errors.Is(err, media.ErrMaxSizeExceeded):
		return msgTooLarge
	default:
		return msgProcessingFailed
	}
}

// recognitionErrorReply maps a recognition failure to a user-facing reply
func recognitionErrorReply(err error) string {
	switch {
	case errors.Is(err, face.ErrNoFace):
		return msgNoFace
	case errors.Is(err, face.ErrMultipleFaces):
		return msgMultipleFaces
	case errors.Is(err, repos.ErrDuplicateVector):
		return msgDuplicateFace
	default:
		return msgProcessingFailed
	}
}

func joinIDs(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ", ")
}
