package models

import "encoding/hex"

const HashSize = 20

// Metafile is the metadata extracted from a .torrent file. It owns all of its
// buffers and keeps no reference to the decoded bencode tree.
type Metafile struct {
	Announce     []byte
	AnnounceList [][][]byte
	Comment      []byte
	CreatedBy    []byte
	CreationDate int64
	Info         Info
	InfoHash     Hash
}

type Info struct {
	Name        []byte
	Length      int64
	PieceLength int64
	PieceHashes []Hash
	Private     bool
}

func (m Metafile) PieceCount() int {
	return len(m.Info.PieceHashes)
}

// Hash is a SHA-1 digest.
type Hash [HashSize]byte

func (h Hash) Bytes() []byte {
	return h[:]
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}
