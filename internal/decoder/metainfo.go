package decoder

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/WendelHime/torrentmeta/internal/bencode"
	"github.com/WendelHime/torrentmeta/internal/shared/models"
)

type MetafileDecoder interface {
	Decode(io.Reader) (models.Metafile, error)
}

type Config struct {
	// MaxInputSize caps the metafile size in bytes. 0 disables the cap.
	MaxInputSize int64
	// MaxDepth caps list/dictionary nesting. 0 disables the cap.
	MaxDepth int
}

func DefaultConfig() Config {
	return Config{
		MaxInputSize: 64 << 20,
		MaxDepth:     bencode.DefaultMaxDepth,
	}
}

type decoder struct {
	logger *slog.Logger
	cfg    Config
}

func NewDecoder(logger *slog.Logger, cfg Config) MetafileDecoder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return decoder{logger: logger, cfg: cfg}
}

func (d decoder) Decode(torrent io.Reader) (models.Metafile, error) {
	data, err := ReadAll(torrent, d.cfg.MaxInputSize)
	if err != nil {
		d.logger.Error("failed to read torrent", slog.Any("error", err))
		return models.Metafile{}, fmt.Errorf("read torrent: %w", err)
	}

	root, err := bencode.Decode(data, bencode.WithMaxDepth(d.cfg.MaxDepth), bencode.WithLogger(d.logger))
	if err != nil {
		d.logger.Error("failed to decode torrent", slog.Any("error", err))
		return models.Metafile{}, fmt.Errorf("decode torrent: %w", err)
	}

	response, err := Extract(root)
	if err != nil {
		d.logger.Error("failed to extract torrent metadata", slog.Any("error", err))
		return models.Metafile{}, fmt.Errorf("extract torrent metadata: %w", err)
	}

	d.logger.Debug("decoded torrent",
		slog.String("info_hash", response.InfoHash.String()),
		slog.Int("pieces", response.PieceCount()),
		slog.Int("size", len(data)),
	)

	return response, nil
}
