package handlers

import (
	"context"
	"net/http"

	"fal-engine/catalog"
	apperrors "fal-engine/errors"
	"fal-engine/reading"
	"fal-engine/web/types"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReadingGenerator produces readings for validated requests.
type ReadingGenerator interface {
	Generate(ctx context.Context, req reading.Request) (*reading.Result, error)
}

type ReadingHandler struct {
	generator ReadingGenerator
	logger    *zap.Logger
}

func NewReadingHandler(generator ReadingGenerator, logger *zap.Logger) *ReadingHandler {
	return &ReadingHandler{
		generator: generator,
		logger:    logger,
	}
}

// Generate handles POST /v1/readings/generate.
func (h *ReadingHandler) Generate(c *gin.Context) {
	var body types.GenerateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.logger.Debug("Failed to bind generate request", zap.Error(err))
		respondWithClientError(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	lang := string(catalog.DefaultLanguage)
	if body.Lang != nil {
		lang = *body.Lang
	}

	res, err := h.generator.Generate(c.Request.Context(), reading.Request{
		UserID:      body.UserID,
		Symbols:     body.Symbols,
		CultureMode: body.CultureMode,
		Lang:        lang,
		Region:      body.Region,
	})
	if err != nil {
		if apperrors.IsInvalidInput(err) {
			respondWithClientError(c, http.StatusBadRequest, msgInvalidRequest)
			return
		}
		respondWithError(c, http.StatusInternalServerError, err, msgInternalError, h.logger,
			zap.String("user_id", body.UserID))
		return
	}

	h.logger.Info("Reading generated",
		zap.String("user_id", body.UserID),
		zap.String("outcome", string(res.Outcome)),
		zap.Int("attempts", res.Attempts),
		zap.Bool("combo_reversed", res.ComboReversed))

	c.JSON(http.StatusOK, types.GenerateResponse{Text: res.Text})
}
