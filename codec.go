package ledmatrix

import "fmt"

// Every frame sent to the matrix firmware starts with these two bytes.
const (
	prefix0 byte = 0x32
	prefix1 byte = 0xAC
)

const (
	// ResponseSize is the fixed length of every reply. Only byte 0 carries
	// meaning; the rest must still be read to keep the stream aligned.
	ResponseSize = 32

	// Width is the number of columns in a frame
	Width = 9
	// ColumnHeight is the number of pixels in a column, slack rows included
	ColumnHeight = 34
	// BufferSize is the length of a one-shot black/white frame
	BufferSize = 39
)

const (
	opBrightness byte = 0x00
	opPattern    byte = 0x01
	opSleep      byte = 0x03
	opAnimate    byte = 0x04
	opDrawBW     byte = 0x06
	opStageCol   byte = 0x07
	opFlushCols  byte = 0x08
)

// Column holds the pixel intensities of one column, top to bottom.
type Column [ColumnHeight]byte

// Frame is a full matrix image as ordered columns.
type Frame [Width]Column

// Buffer is a packed full-frame image. Its bit layout is owned by the
// firmware.
type Buffer [BufferSize]byte

// Pattern is one of the presets built into the firmware.
type Pattern byte

const (
	// patternPercent is the fill-level sub-command; it takes an argument
	// and is reached through Matrix.Percent.
	patternPercent Pattern = 0x00

	PatternGradient        Pattern = 0x01
	PatternDoubleGradient  Pattern = 0x02
	PatternLotusHorizontal Pattern = 0x03
	PatternZigzag          Pattern = 0x04
	PatternFullBrightness  Pattern = 0x05
	PatternPanic           Pattern = 0x06
	PatternLotusVertical   Pattern = 0x07
	PatternTest            Pattern = 0x08
)

var patternNames = map[Pattern]string{
	PatternGradient:        "gradient",
	PatternDoubleGradient:  "double-gradient",
	PatternLotusHorizontal: "lotus-horizontal",
	PatternZigzag:          "zigzag",
	PatternFullBrightness:  "full-brightness",
	PatternPanic:           "panic",
	PatternLotusVertical:   "lotus-vertical",
	PatternTest:            "test",
}

// Patterns lists the presets in opcode order
func Patterns() []Pattern {
	return []Pattern{
		PatternGradient,
		PatternDoubleGradient,
		PatternLotusHorizontal,
		PatternZigzag,
		PatternFullBrightness,
		PatternPanic,
		PatternLotusVertical,
		PatternTest,
	}
}

func (p Pattern) String() string {
	if name, ok := patternNames[p]; ok {
		return name
	}
	return fmt.Sprintf("pattern(0x%02x)", byte(p))
}

// ParsePattern returns the preset with the given name
func ParsePattern(name string) (Pattern, error) {
	for p, n := range patternNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown pattern %q", ErrValidation, name)
}

// Command is one logical operation before framing.
type Command struct {
	Opcode  byte
	Payload []byte
	// Reply is set when the device answers with a ResponseSize reply
	Reply bool
}

// Frame encodes the command as prefix, opcode and payload.
func (c Command) Frame() []byte {
	frame := make([]byte, 0, 3+len(c.Payload))
	frame = append(frame, prefix0, prefix1, c.Opcode)
	return append(frame, c.Payload...)
}

func getBrightnessCmd() Command {
	return Command{Opcode: opBrightness, Reply: true}
}

func setBrightnessCmd(level byte) Command {
	return Command{Opcode: opBrightness, Payload: []byte{level}}
}

func percentCmd(percent uint8) Command {
	return Command{Opcode: opPattern, Payload: []byte{byte(patternPercent), percent}}
}

func patternCmd(p Pattern) Command {
	return Command{Opcode: opPattern, Payload: []byte{byte(p)}}
}

func getToggleCmd(opcode byte) Command {
	return Command{Opcode: opcode, Reply: true}
}

func setToggleCmd(opcode byte, on bool) Command {
	return Command{Opcode: opcode, Payload: []byte{encodeBool(on)}}
}

func drawBufferCmd(buf *Buffer) Command {
	return Command{Opcode: opDrawBW, Payload: buf[:]}
}

func stageColumnCmd(index uint8, col *Column) Command {
	payload := make([]byte, 0, 1+ColumnHeight)
	payload = append(payload, index)
	payload = append(payload, col[:]...)
	return Command{Opcode: opStageCol, Payload: payload}
}

func flushColumnsCmd() Command {
	return Command{Opcode: opFlushCols}
}

func encodeBool(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func decodeBool(status byte) bool {
	return status != 0
}

// decodeStatus extracts the status byte of a reply.
func decodeStatus(resp *[ResponseSize]byte) byte {
	return resp[0]
}
