package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/WendelHime/torrentmeta/internal/bencode"
	"github.com/WendelHime/torrentmeta/internal/decoder"
	"github.com/WendelHime/torrentmeta/internal/shared/models"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	logger := newLogger(cfg, stderr)

	data, err := readTorrent(cfg, stderr)
	if err != nil {
		logger.Error("failed to read torrent file", slog.String("path", cfg.torrentPath), slog.Any("error", err))
		return 1
	}

	switch cfg.command {
	case "info":
		metafile, err := decoder.NewDecoder(logger, cfg.decoder).Decode(bytes.NewReader(data))
		if err != nil {
			return 1
		}
		printInfo(stdout, metafile)

	case "pieces":
		metafile, err := decoder.NewDecoder(logger, cfg.decoder).Decode(bytes.NewReader(data))
		if err != nil {
			return 1
		}
		for i, h := range metafile.Info.PieceHashes {
			fmt.Fprintf(stdout, "%d\t%s\n", i, h)
		}

	case "canonical":
		root, err := bencode.Decode(data, bencode.WithMaxDepth(cfg.decoder.MaxDepth), bencode.WithLogger(logger))
		if err != nil {
			logger.Error("failed to decode torrent", slog.Any("error", err))
			return 1
		}
		if err := bencode.EncodeTo(stdout, root); err != nil {
			logger.Error("failed to write canonical torrent", slog.Any("error", err))
			return 1
		}
	}

	return 0
}

// readTorrent loads the whole file, bounded by the configured size limit.
func readTorrent(cfg config, stderr io.Writer) ([]byte, error) {
	f, err := os.Open(cfg.torrentPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if cfg.progress {
		size := int64(-1)
		if st, err := f.Stat(); err == nil {
			size = st.Size()
		}
		bar := progressbar.NewOptions64(size,
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("reading torrent"),
			progressbar.OptionShowBytes(true),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Finish()
		r = io.TeeReader(f, bar)
	}

	return decoder.ReadAll(r, cfg.decoder.MaxInputSize)
}

func printInfo(w io.Writer, m models.Metafile) {
	fmt.Fprintf(w, "Tracker URL: %s\n", m.Announce)
	for i, tier := range m.AnnounceList {
		for _, url := range tier {
			fmt.Fprintf(w, "Tracker tier %d: %s\n", i, url)
		}
	}
	fmt.Fprintf(w, "Name: %s\n", m.Info.Name)
	fmt.Fprintf(w, "Length: %d\n", m.Info.Length)
	fmt.Fprintf(w, "Info Hash: %s\n", m.InfoHash)
	fmt.Fprintf(w, "Piece Length: %d\n", m.Info.PieceLength)
	fmt.Fprintf(w, "Pieces: %d\n", m.PieceCount())
	if m.Info.Private {
		fmt.Fprintln(w, "Private: yes")
	}
	if len(m.Comment) > 0 {
		fmt.Fprintf(w, "Comment: %s\n", m.Comment)
	}
	if len(m.CreatedBy) > 0 {
		fmt.Fprintf(w, "Created By: %s\n", m.CreatedBy)
	}
	if m.CreationDate != 0 {
		fmt.Fprintf(w, "Creation Date: %s\n", time.Unix(m.CreationDate, 0).UTC().Format(time.RFC3339))
	}
}
