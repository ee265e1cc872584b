package anime

import (
	"fmt"

	"github.com/markusressel/asus2go/internal/platform"
)

const packetHeaderLength = 7

// controlPacket pads the given bytes to a full report
func controlPacket(data ...byte) []byte {
	packet := make([]byte, platform.AnimePacketLength)
	copy(packet, data)
	return packet
}

func packetOnOff(on bool) []byte {
	if on {
		return controlPacket(0x5e, 0xc0, 0x04, 0x03)
	}
	return controlPacket(0x5e, 0xc0, 0x04, 0x00)
}

func packetBootOnOff(on bool) []byte {
	if on {
		return controlPacket(0x5e, 0xc3, 0x01, 0x80)
	}
	return controlPacket(0x5e, 0xc3, 0x01, 0x00)
}

func packetBootApply() []byte {
	return controlPacket(0x5e, 0xc4, 0x01, 0x80)
}

// paneHeader addresses the led range of a pane: start offset (1 based) and length, little endian
func paneHeader(pane int) []byte {
	start := 1 + pane*platform.AnimePaneLength
	length := platform.AnimePaneLength
	return []byte{0x5e, 0xc0, 0x02, byte(start), byte(start >> 8), byte(length), byte(length >> 8)}
}

// framePackets splits a full frame buffer into one packet per pane
func framePackets(animeType platform.AnimeType, frame []byte) ([][]byte, error) {
	if len(frame) != animeType.FrameLength() {
		return nil, fmt.Errorf("frame length %d does not match %s (%d)", len(frame), animeType, animeType.FrameLength())
	}
	panes := animeType.Geometry().Panes
	packets := make([][]byte, panes)
	for pane := 0; pane < panes; pane++ {
		packet := controlPacket(paneHeader(pane)...)
		offset := pane * platform.AnimePaneLength
		copy(packet[packetHeaderLength:], frame[offset:offset+platform.AnimePaneLength])
		packets[pane] = packet
	}
	return packets, nil
}
