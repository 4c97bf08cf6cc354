package decoder

import (
	"bytes"
	"crypto/sha1"
	"fmt"

	"github.com/WendelHime/torrentmeta/internal/bencode"
	"github.com/WendelHime/torrentmeta/internal/shared/models"
)

// Extract pulls the torrent metadata out of a decoded metafile. On error the
// returned Metafile is always the zero value. The info hash is computed over
// the canonical re-encoding of the info dictionary, so a metafile with
// unsorted keys hashes the same as its canonical form.
func Extract(v bencode.Value) (models.Metafile, error) {
	var response models.Metafile

	root, ok := v.(bencode.Dict)
	if !ok {
		return models.Metafile{}, wrongType("<root>", bencode.KindDict, v)
	}

	info, _, err := lookup[bencode.Dict](root, "", "info", true)
	if err != nil {
		return models.Metafile{}, err
	}
	announce, _, err := lookup[bencode.String](root, "", "announce", true)
	if err != nil {
		return models.Metafile{}, err
	}

	response.InfoHash = sha1.Sum(bencode.Encode(info))
	response.Announce = bytes.Clone(announce)

	response.Info, err = extractInfo(info)
	if err != nil {
		return models.Metafile{}, err
	}

	response.AnnounceList, err = extractAnnounceList(root)
	if err != nil {
		return models.Metafile{}, err
	}

	comment, _, err := lookup[bencode.String](root, "", "comment", false)
	if err != nil {
		return models.Metafile{}, err
	}
	response.Comment = bytes.Clone(comment)

	createdBy, _, err := lookup[bencode.String](root, "", "created by", false)
	if err != nil {
		return models.Metafile{}, err
	}
	response.CreatedBy = bytes.Clone(createdBy)

	creationDate, _, err := lookup[bencode.Integer](root, "", "creation date", false)
	if err != nil {
		return models.Metafile{}, err
	}
	response.CreationDate = int64(creationDate)

	return response, nil
}

func extractInfo(info bencode.Dict) (models.Info, error) {
	var response models.Info

	name, _, err := lookup[bencode.String](info, "info", "name", true)
	if err != nil {
		return models.Info{}, err
	}
	length, _, err := lookup[bencode.Integer](info, "info", "length", true)
	if err != nil {
		return models.Info{}, err
	}
	pieceLength, _, err := lookup[bencode.Integer](info, "info", "piece length", true)
	if err != nil {
		return models.Info{}, err
	}
	pieces, _, err := lookup[bencode.String](info, "info", "pieces", true)
	if err != nil {
		return models.Info{}, err
	}
	private, _, err := lookup[bencode.Integer](info, "info", "private", false)
	if err != nil {
		return models.Info{}, err
	}

	response.Name = bytes.Clone(name)
	response.Length = int64(length)
	response.PieceLength = int64(pieceLength)
	response.Private = private != 0
	response.PieceHashes, err = calculatePiecesHashes(pieces)
	if err != nil {
		return models.Info{}, err
	}

	return response, nil
}

// extractAnnounceList reads the optional tiered tracker list (BEP-12).
func extractAnnounceList(root bencode.Dict) ([][][]byte, error) {
	tiers, ok, err := lookup[bencode.List](root, "", "announce-list", false)
	if err != nil || !ok {
		return nil, err
	}

	response := make([][][]byte, 0, len(tiers))
	for i, t := range tiers {
		tierPath := fmt.Sprintf("announce-list[%d]", i)
		tier, ok := t.(bencode.List)
		if !ok {
			return nil, wrongType(tierPath, bencode.KindList, t)
		}

		urls := make([][]byte, 0, len(tier))
		for j, u := range tier {
			url, ok := u.(bencode.String)
			if !ok {
				return nil, wrongType(fmt.Sprintf("%s[%d]", tierPath, j), bencode.KindString, u)
			}
			urls = append(urls, bytes.Clone(url))
		}
		response = append(response, urls)
	}

	return response, nil
}

func calculatePiecesHashes(pieces []byte) ([]models.Hash, error) {
	if len(pieces)%models.HashSize != 0 {
		return nil, &FieldError{
			Field: "info.pieces",
			Err:   ErrInconsistentPieceData,
			Msg:   fmt.Sprintf("got %d bytes", len(pieces)),
		}
	}

	piecesHashes := make([]models.Hash, len(pieces)/models.HashSize)
	for i := range piecesHashes {
		copy(piecesHashes[i][:], pieces[i*models.HashSize:])
	}

	return piecesHashes, nil
}

// lookup fetches key from d and asserts its variant. found is false only for
// an absent optional key.
func lookup[T bencode.Value](d bencode.Dict, parent, key string, required bool) (value T, found bool, err error) {
	path := key
	if parent != "" {
		path = parent + "." + key
	}

	v, ok := d[key]
	if !ok {
		if required {
			return value, false, &FieldError{Field: path, Err: ErrMissingField}
		}
		return value, false, nil
	}

	value, ok = v.(T)
	if !ok {
		return value, false, wrongType(path, value.Kind(), v)
	}

	return value, true, nil
}

func wrongType(path string, want bencode.Kind, got bencode.Value) error {
	gotKind := "nil"
	if got != nil {
		gotKind = got.Kind().String()
	}
	return &FieldError{
		Field: path,
		Err:   ErrWrongType,
		Msg:   fmt.Sprintf("want %s, got %s", want, gotKind),
	}
}
