package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Wire bounds for the string fields. The frame layout is fixed so a
// packet is always written and read as one whole transport record.
const (
	SenderLen   = 32
	GameNameLen = 64
	PayloadLen  = 512

	// FrameSize is the exact byte length of an encoded packet:
	// type (2) + sender + gameName + payload + x (4) + y (4) + shotResult (4)
	FrameSize = 2 + SenderLen + GameNameLen + PayloadLen + 12
)

// ErrFieldTooLong is returned when a string field exceeds its wire bound
type ErrFieldTooLong struct {
	Field string
	Max   int
}

func (e *ErrFieldTooLong) Error() string {
	return fmt.Sprintf("packet field %s exceeds %d bytes", e.Field, e.Max)
}

// Encode serializes the packet into a fixed-length frame. String
// fields are NUL-padded; strings longer than their bound are rejected
// rather than silently truncated.
func (p *Packet) Encode() ([]byte, error) {
	if len(p.Sender) >= SenderLen {
		return nil, &ErrFieldTooLong{Field: "sender", Max: SenderLen - 1}
	}
	if len(p.GameName) >= GameNameLen {
		return nil, &ErrFieldTooLong{Field: "gameName", Max: GameNameLen - 1}
	}
	if len(p.Payload) >= PayloadLen {
		return nil, &ErrFieldTooLong{Field: "payload", Max: PayloadLen - 1}
	}

	buf := make([]byte, FrameSize)
	binary.LittleEndian.PutUint16(buf[0:], uint16(p.Type))
	copy(buf[2:2+SenderLen], p.Sender)
	copy(buf[2+SenderLen:2+SenderLen+GameNameLen], p.GameName)
	copy(buf[2+SenderLen+GameNameLen:2+SenderLen+GameNameLen+PayloadLen], p.Payload)
	tail := 2 + SenderLen + GameNameLen + PayloadLen
	binary.LittleEndian.PutUint32(buf[tail:], uint32(int32(p.X)))
	binary.LittleEndian.PutUint32(buf[tail+4:], uint32(int32(p.Y)))
	binary.LittleEndian.PutUint32(buf[tail+8:], uint32(int32(p.ShotResult)))
	return buf, nil
}

// Decode parses a fixed-length frame into a packet
func Decode(frame []byte) (Packet, error) {
	if len(frame) != FrameSize {
		return Packet{}, fmt.Errorf("frame is %d bytes, want %d", len(frame), FrameSize)
	}

	var p Packet
	p.Type = MsgType(binary.LittleEndian.Uint16(frame[0:]))
	p.Sender = boundedString(frame[2 : 2+SenderLen])
	p.GameName = boundedString(frame[2+SenderLen : 2+SenderLen+GameNameLen])
	p.Payload = boundedString(frame[2+SenderLen+GameNameLen : 2+SenderLen+GameNameLen+PayloadLen])
	tail := 2 + SenderLen + GameNameLen + PayloadLen
	p.X = int(int32(binary.LittleEndian.Uint32(frame[tail:])))
	p.Y = int(int32(binary.LittleEndian.Uint32(frame[tail+4:])))
	p.ShotResult = int(int32(binary.LittleEndian.Uint32(frame[tail+8:])))
	return p, nil
}

func boundedString(field []byte) string {
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}
	return string(field)
}
