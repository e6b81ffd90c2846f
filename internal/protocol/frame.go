// Package protocol implements the UMX framed binary protocol: byte-stream
// reassembly into discrete command payloads, and response framing with a
// CRC-8/CCITT trailer.
package protocol

// Magic is the 3-byte frame prefix, ASCII "UMX".
var Magic = [3]byte{0x55, 0x4D, 0x58}

// HeaderLen is the size of an inbound frame header: magic (3) + big-endian
// length (2).
const HeaderLen = 5

// Encode builds a complete outbound frame: magic, big-endian length
// (opcode + response), opcode, response bytes, and a trailing CRC-8/CCITT
// over opcode∥response.
func Encode(opcode byte, response []byte) []byte {
	length := 1 + len(response)
	frame := make([]byte, 0, HeaderLen+length+1)
	frame = append(frame, Magic[:]...)
	frame = append(frame, byte(length>>8), byte(length&0xFF))
	frame = append(frame, opcode)
	frame = append(frame, response...)

	crc := CRC8(frame[HeaderLen:])
	frame = append(frame, crc)
	return frame
}
