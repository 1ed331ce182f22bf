package handlers

import (
	stderrors "errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Lorak9904/RhetorAI/internal/api/errors"
	"github.com/Lorak9904/RhetorAI/internal/api/middleware"
	"github.com/Lorak9904/RhetorAI/internal/api/v1/dto"
	"github.com/Lorak9904/RhetorAI/internal/api/v1/services"
	"github.com/Lorak9904/RhetorAI/internal/app/api/provider"
)

// DefaultMaxUploadMB caps audio uploads when no limit is configured
const DefaultMaxUploadMB = 25

// FeedbackHandler handles answer scoring and speech requests
type FeedbackHandler struct {
	feedbackService services.FeedbackService
	speechService   services.SpeechService
	maxUploadMB     int
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(feedbackService services.FeedbackService, speechService services.SpeechService, maxUploadMB int) *FeedbackHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = DefaultMaxUploadMB
	}
	return &FeedbackHandler{
		feedbackService: feedbackService,
		speechService:   speechService,
		maxUploadMB:     maxUploadMB,
	}
}

// Audio scores a recorded answer
// @Summary Score a recorded answer
// @Description Transcribe an uploaded recording and return structured feedback
// @Tags feedback
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Recorded answer (webm, mp3, wav, m4a, ...)"
// @Success 200 {object} dto.FeedbackResponse
// @Failure 400 {object} errors.APIError
// @Failure 413 {object} errors.APIError
// @Failure 415 {object} errors.APIError
// @Failure 502 {object} errors.APIError
// @Router /api/v1/audio [post]
func (h *FeedbackHandler) Audio(c *gin.Context) {
	limit := int64(h.maxUploadMB) << 20
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+(1<<20))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			middleware.HandleError(c, errors.NewTooLargeError(h.maxUploadMB))
			return
		}
		middleware.HandleError(c, errors.NewBadRequestError("multipart field 'file' is required"))
		return
	}

	if fileHeader.Size > limit {
		middleware.HandleError(c, errors.NewTooLargeError(h.maxUploadMB))
		return
	}
	if provider.GetAudioFormatFromFilename(fileHeader.Filename) == "" {
		middleware.HandleError(c, errors.NewUnsupportedMediaError("unsupported audio format: "+fileHeader.Filename))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("cannot open uploaded file"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("cannot read uploaded file"))
		return
	}

	result, err := h.feedbackService.AnalyzeAudio(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		middleware.HandleError(c, errors.FromPipelineError(err))
		return
	}

	c.JSON(http.StatusOK, dto.NewFeedbackResponse(result))
}

// Chat scores a typed answer
// @Summary Score a typed answer
// @Description Analyze a plain-text answer and return structured feedback
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Answer text"
// @Success 200 {object} dto.FeedbackResponse
// @Failure 400 {object} errors.APIError
// @Failure 422 {object} errors.APIError
// @Failure 502 {object} errors.APIError
// @Router /api/v1/chat [post]
func (h *FeedbackHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	result, err := h.feedbackService.Analyze(c.Request.Context(), req.Text)
	if err != nil {
		middleware.HandleError(c, errors.FromPipelineError(err))
		return
	}

	c.JSON(http.StatusOK, dto.NewFeedbackResponse(result))
}

// Speech reads text aloud
// @Summary Synthesize speech
// @Description Convert text to MP3 audio
// @Tags speech
// @Accept json
// @Produce audio/mpeg
// @Param request body dto.SpeechRequest true "Text to read"
// @Success 200 {file} binary
// @Failure 422 {object} errors.APIError
// @Failure 503 {object} errors.APIError
// @Router /api/v1/speech [post]
func (h *FeedbackHandler) Speech(c *gin.Context) {
	var req dto.SpeechRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	if h.speechService == nil {
		middleware.HandleError(c, errors.NewServiceUnavailableError("speech synthesis is not configured"))
		return
	}

	audio, err := h.speechService.Synthesize(c.Request.Context(), req.Text)
	if err != nil {
		middleware.HandleError(c, errors.FromPipelineError(err))
		return
	}

	c.Data(http.StatusOK, "audio/mpeg", audio)
}
