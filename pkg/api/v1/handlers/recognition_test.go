package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"

	"github.com/facewatch/facewatch/internal/db/models"
	"github.com/facewatch/facewatch/internal/face"
	"github.com/facewatch/facewatch/internal/types"
)

// jpegHeader is enough of a JPEG for MIME detection
var jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

type RecognitionHandlerTestSuite struct {
	suite.Suite
	env *handlerTestEnv
	app *fiber.App
}

func (s *RecognitionHandlerTestSuite) SetupTest() {
	s.env = newHandlerTestEnv(&s.Suite)

	handler := NewRecognitionHandler(s.env.recognitionService)

	app := fiber.New()
	app.Post("/recognitions", handler.CreateRecognition)
	s.app = app
}

func (s *RecognitionHandlerTestSuite) TearDownTest() {
	s.env.close()
}

func TestRecognitionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RecognitionHandlerTestSuite))
}

// newImageRequest builds a multipart upload for the recognition endpoint
func (s *RecognitionHandlerTestSuite) newImageRequest(field string, content []byte) *http.Request {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile(field, "probe.jpg")
	s.Require().NoError(err)
	_, err = part.Write(content)
	s.Require().NoError(err)
	s.Require().NoError(writer.Close())

	req := httptest.NewRequest("POST", "/recognitions", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func (s *RecognitionHandlerTestSuite) postImage(seed float64) *http.Response {
	s.env.encoder.vector = testVector(seed)
	resp, err := s.app.Test(s.newImageRequest("image", jpegHeader), -1)
	s.Require().NoError(err)
	return resp
}

func (s *RecognitionHandlerTestSuite) decodeRecognition(resp *http.Response) types.Recognition {
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	var recognition types.Recognition
	s.Require().NoError(json.Unmarshal(body, &recognition))
	return recognition
}

func (s *RecognitionHandlerTestSuite) TestCreateRecognitionNewFace() {
	resp := s.postImage(1.0)
	s.Equal(200, resp.StatusCode)

	recognition := s.decodeRecognition(resp)
	s.Equal(types.StatusNew, recognition.Status)
	s.NotZero(recognition.PersonID)
	s.Equal("person_1", recognition.Label)
	s.Equal(1, recognition.AppearanceCount)
}

func (s *RecognitionHandlerTestSuite) TestCreateRecognitionKnownFace() {
	resp := s.postImage(1.0)
	s.Equal(200, resp.StatusCode)
	created := s.decodeRecognition(resp)

	resp = s.postImage(1.1)
	s.Equal(200, resp.StatusCode)

	recognition := s.decodeRecognition(resp)
	s.Equal(types.StatusRecognized, recognition.Status)
	s.Equal(created.PersonID, recognition.PersonID)
	s.Equal(2, recognition.AppearanceCount)
	s.InDelta(0.1, recognition.Distance, 1e-9)
}

func (s *RecognitionHandlerTestSuite) TestCreateRecognitionAmbiguous() {
	s.Equal(200, s.postImage(1.0).StatusCode)
	s.Equal(200, s.postImage(2.0).StatusCode)

	resp := s.postImage(1.5)
	s.Equal(200, resp.StatusCode)

	recognition := s.decodeRecognition(resp)
	s.Equal(types.StatusAmbiguous, recognition.Status)
	s.Len(recognition.CandidateIDs, 2)
	s.Zero(recognition.PersonID)
}

func (s *RecognitionHandlerTestSuite) TestCreateRecognitionDuplicate() {
	// Prime the corpus snapshot while the database is empty, then register
	// the face behind the cache's back. The stale snapshot sends the upload
	// down the new-person path where the hash check refuses it.
	_, err := s.env.cache.Snapshot(context.Background())
	s.Require().NoError(err)

	person := &models.Person{AppearanceCount: 1}
	s.Require().NoError(s.env.personRepo.Create(context.Background(), person))
	s.Require().NoError(s.env.embeddingRepo.Create(context.Background(), &models.FaceEmbedding{
		PersonID: person.ID,
		Vector:   testVector(1.0),
	}))

	resp := s.postImage(1.0)
	s.Equal(409, resp.StatusCode)
}

func (s *RecognitionHandlerTestSuite) TestCreateRecognitionNoFace() {
	s.env.encoder.err = face.ErrNoFace
	resp, err := s.app.Test(s.newImageRequest("image", jpegHeader), -1)
	s.Require().NoError(err)
	s.Equal(422, resp.StatusCode)

	s.env.encoder.err = face.ErrMultipleFaces
	resp, err = s.app.Test(s.newImageRequest("image", jpegHeader), -1)
	s.Require().NoError(err)
	s.Equal(422, resp.StatusCode)
}

func (s *RecognitionHandlerTestSuite) TestCreateRecognitionMissingImage() {
	req := s.newImageRequest("attachment", jpegHeader)
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	s.Equal(400, resp.StatusCode)
}

func (s *RecognitionHandlerTestSuite) TestCreateRecognitionRejectsNonJPEG() {
	req := s.newImageRequest("image", pngHeader)
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	s.Equal(415, resp.StatusCode)
}
