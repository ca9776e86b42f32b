// Package codec encodes and decodes the binary save format.
//
// Layout, in the producing machine's byte order:
//
//	header   magic | version | flags | checksum   (4 x uint32)
//	hunter   fixed-size record
//	count    uint32
//	quests   count x fixed-size record
//
// The checksum is CRC-32 (IEEE) of the hunter region, of the count field and
// of the quest region, XORed together. Any layout change needs a new Version;
// there is no migration between versions.
package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/rcliao/hunter-protocol/internal/model"
)

const (
	Magic   uint32 = 0x48554E54 // "HUNT"
	Version uint32 = 1
)

var (
	ErrBadMagic         = errors.New("invalid file format (bad magic)")
	ErrVersionMismatch  = errors.New("incompatible save version")
	ErrChecksumMismatch = errors.New("file corrupted (checksum mismatch)")
	ErrTooManyQuests    = errors.New("quest count exceeds capacity")
	ErrTruncated        = errors.New("save data truncated")
	ErrInvalidRank      = errors.New("hunter rank out of range")
)

var byteOrder = binary.NativeEndian

var (
	HeaderSize      = binary.Size(header{})
	HunterSize      = binary.Size(hunterRecord{})
	CountSize       = 4
	QuestRecordSize = binary.Size(questRecord{})
)

// Regions locates the checksummed byte ranges of an encoded save.
type Regions struct {
	Hunter [2]int
	Count  [2]int
	Quests [2]int
}

// Layout returns the byte ranges for a save holding n quests.
func Layout(n int) Regions {
	hunterEnd := HeaderSize + HunterSize
	countEnd := hunterEnd + CountSize
	return Regions{
		Hunter: [2]int{HeaderSize, hunterEnd},
		Count:  [2]int{hunterEnd, countEnd},
		Quests: [2]int{countEnd, countEnd + n*QuestRecordSize},
	}
}

// Checksum combines independent CRC-32 sums of the three regions with XOR,
// so region order does not affect the result.
func Checksum(hunter, count, quests []byte) uint32 {
	return crc32.ChecksumIEEE(hunter) ^ crc32.ChecksumIEEE(count) ^ crc32.ChecksumIEEE(quests)
}

// Encode serializes st. Text fields that do not fit their fixed width are
// rejected rather than truncated.
func Encode(st *model.State) ([]byte, error) {
	if st == nil || st.Hunter == nil {
		return nil, fmt.Errorf("encode: %w", model.ErrInvalidArgument)
	}
	quests := st.Quests.All()
	if len(quests) > model.MaxQuests {
		return nil, fmt.Errorf("encode: %d quests: %w", len(quests), ErrTooManyQuests)
	}

	if !st.Hunter.Rank.Valid() {
		return nil, fmt.Errorf("encode: rank %d: %w", st.Hunter.Rank, ErrInvalidRank)
	}
	hr, err := toHunterRecord(st.Hunter)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(Layout(len(quests)).Quests[1])
	buf.Write(make([]byte, HeaderSize))
	if err := binary.Write(&buf, byteOrder, &hr); err != nil {
		return nil, fmt.Errorf("encode hunter: %w", err)
	}
	if err := binary.Write(&buf, byteOrder, uint32(len(quests))); err != nil {
		return nil, fmt.Errorf("encode count: %w", err)
	}
	for _, q := range quests {
		qr, err := toQuestRecord(q)
		if err != nil {
			return nil, fmt.Errorf("encode: %w", err)
		}
		if err := binary.Write(&buf, byteOrder, &qr); err != nil {
			return nil, fmt.Errorf("encode quest %d: %w", q.ID, err)
		}
	}

	out := buf.Bytes()
	reg := Layout(len(quests))
	h := header{
		Magic:    Magic,
		Version:  Version,
		Checksum: Checksum(span(out, reg.Hunter), span(out, reg.Count), span(out, reg.Quests)),
	}
	byteOrder.PutUint32(out[0:], h.Magic)
	byteOrder.PutUint32(out[4:], h.Version)
	byteOrder.PutUint32(out[8:], h.Flags)
	byteOrder.PutUint32(out[12:], h.Checksum)
	return out, nil
}

// Decode parses and validates an encoded save. It checks, in order, the
// magic, the version, the quest count against capacity, the checksum and
// finally the hunter's rank. On any failure no state is returned.
func Decode(data []byte) (*model.State, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("decode header: %w", ErrTruncated)
	}
	var h header
	if _, err := binary.Decode(data[:HeaderSize], byteOrder, &h); err != nil {
		return nil, fmt.Errorf("decode header: %w", err)
	}
	if h.Magic != Magic {
		return nil, fmt.Errorf("decode: magic %#08x: %w", h.Magic, ErrBadMagic)
	}
	if h.Version != Version {
		return nil, fmt.Errorf("decode: version %d, want %d: %w", h.Version, Version, ErrVersionMismatch)
	}

	reg := Layout(0)
	if len(data) < reg.Count[1] {
		return nil, fmt.Errorf("decode hunter: %w", ErrTruncated)
	}
	var hr hunterRecord
	if _, err := binary.Decode(span(data, reg.Hunter), byteOrder, &hr); err != nil {
		return nil, fmt.Errorf("decode hunter: %w", err)
	}

	count := byteOrder.Uint32(span(data, reg.Count))
	if count > model.MaxQuests {
		return nil, fmt.Errorf("decode: %d quests: %w", count, ErrTooManyQuests)
	}

	reg = Layout(int(count))
	if len(data) < reg.Quests[1] {
		return nil, fmt.Errorf("decode quests: %w", ErrTruncated)
	}

	questBytes := span(data, reg.Quests)
	records := make([]questRecord, count)
	for i := range records {
		rec := questBytes[i*QuestRecordSize : (i+1)*QuestRecordSize]
		if _, err := binary.Decode(rec, byteOrder, &records[i]); err != nil {
			return nil, fmt.Errorf("decode quest %d: %w", i, err)
		}
	}

	sum := Checksum(span(data, reg.Hunter), span(data, reg.Count), questBytes)
	if sum != h.Checksum {
		return nil, fmt.Errorf("decode: stored %#08x, computed %#08x: %w", h.Checksum, sum, ErrChecksumMismatch)
	}
	if rank := model.Rank(hr.Rank); !rank.Valid() {
		return nil, fmt.Errorf("decode: rank %d: %w", hr.Rank, ErrInvalidRank)
	}

	st := model.NewState(fromHunterRecord(&hr))
	for i := range records {
		if err := st.Quests.Add(fromQuestRecord(&records[i])); err != nil {
			return nil, fmt.Errorf("decode quest %d: %w", i, err)
		}
	}
	return st, nil
}

func span(b []byte, r [2]int) []byte {
	return b[r[0]:r[1]]
}
