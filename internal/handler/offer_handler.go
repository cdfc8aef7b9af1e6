package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"retroboard/internal/service"
)

// uploads beyond this are rejected before extraction
const maxOfferUploadBytes = 10 << 20

type OfferHandler struct {
	offers *service.OfferService
	logger *zap.Logger
}

func NewOfferHandler(offers *service.OfferService, logger *zap.Logger) *OfferHandler {
	return &OfferHandler{offers: offers, logger: logger}
}

type parseOfferRequest struct {
	OfferText string `json:"offer_text"`
}

func (h *OfferHandler) Parse(c *gin.Context) {
	var req parseOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.offers.Parse(c.Request.Context(), req.OfferText)
	if err != nil {
		if errors.Is(err, service.ErrOfferTooShort) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Offer text is too short or missing"})
			return
		}
		respondCompletionError(c, h.logger, "parse_offer", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExtractText accepts a multipart document upload and returns its plain
// text, ready to be fed into Parse or task generation.
func (h *OfferHandler) ExtractText(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fh.Size > maxOfferUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.logger.Error("failed to open upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		h.logger.Error("failed to read upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
		return
	}

	text, err := h.offers.ExtractText(fh.Filename, data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text})
}
